package taskdoc

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultTaskWindow is how many lines, starting at a task header, are
// searched for the task's completion marker.
const DefaultTaskWindow = 5

// Kind classifies a single document line.
type Kind int

const (
	KindText Kind = iota
	KindBlank
	KindPhase
	KindTask
	KindCheckpoint
	KindGitCommits
	KindCommitBullet
	KindStatus
	KindNotes
	KindRule
)

var kindNames = map[Kind]string{
	KindText:         "text",
	KindBlank:        "blank",
	KindPhase:        "phase",
	KindTask:         "task",
	KindCheckpoint:   "checkpoint",
	KindGitCommits:   "git-commits",
	KindCommitBullet: "commit-bullet",
	KindStatus:       "status",
	KindNotes:        "notes",
	KindRule:         "rule",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsBoundary reports whether a line of this kind ends a checkpoint's extent.
func (k Kind) IsBoundary() bool {
	return k == KindCheckpoint || k == KindPhase || k == KindRule
}

// Block is one classified line.
type Block struct {
	Kind   Kind
	Line   int    // 0-based index into Document.Lines
	Phase  int    // phase number for KindPhase and KindCheckpoint; 0 if absent
	TaskID string // "major.minor" for KindTask
	// Complete is set for tasks (marker within the task window) and for
	// checkpoints (marker on the line directly below the header).
	Complete bool
}

// Options controls classification.
type Options struct {
	Matcher    *Matcher
	TaskWindow int
}

func (o Options) matcher() *Matcher {
	if o.Matcher == nil {
		return defaultMatcher
	}
	return o.Matcher
}

func (o Options) window() int {
	if o.TaskWindow <= 0 {
		return DefaultTaskWindow
	}
	return o.TaskWindow
}

const (
	checkpointPrefix = "## CHECKPOINT:"
	phasePrefix      = "## Phase "
	taskPrefix       = "### Task "
	gitCommitPrefix  = "Git Commit"
	statusPrefix     = "Status:"
	notesPrefix      = "Notes:"
	bulletPrefix     = "- `"
)

var (
	phaseNumberRe = regexp.MustCompile(`Phase (\d+)`)
	taskIDRe      = regexp.MustCompile(`Task (\d+\.\d+):`)
	ruleRe        = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
)

// Classify assigns a Block to every line of the document.
func (d *Document) Classify(opts Options) []Block {
	m := opts.matcher()
	window := opts.window()

	blocks := make([]Block, len(d.Lines))
	for i, line := range d.Lines {
		b := classifyLine(line)
		b.Line = i

		switch b.Kind {
		case KindCheckpoint:
			if i+1 < len(d.Lines) {
				b.Complete = m.Match(d.Lines[i+1])
			}
		case KindTask:
			end := i + window
			if end > len(d.Lines) {
				end = len(d.Lines)
			}
			for j := i; j < end; j++ {
				if m.Match(d.Lines[j]) {
					b.Complete = true
					break
				}
			}
		}
		blocks[i] = b
	}
	return blocks
}

func classifyLine(line string) Block {
	switch {
	case strings.HasPrefix(line, checkpointPrefix):
		return Block{Kind: KindCheckpoint, Phase: phaseNumber(line)}
	case strings.HasPrefix(line, phasePrefix):
		if n := phaseNumber(line); n > 0 {
			return Block{Kind: KindPhase, Phase: n}
		}
	case strings.HasPrefix(line, taskPrefix):
		if m := taskIDRe.FindStringSubmatch(line); m != nil {
			return Block{Kind: KindTask, TaskID: m[1]}
		}
	case strings.HasPrefix(line, gitCommitPrefix):
		return Block{Kind: KindGitCommits}
	case strings.HasPrefix(line, statusPrefix):
		return Block{Kind: KindStatus}
	case strings.HasPrefix(line, notesPrefix):
		return Block{Kind: KindNotes}
	case strings.HasPrefix(strings.TrimLeft(line, " \t"), bulletPrefix):
		return Block{Kind: KindCommitBullet}
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Block{Kind: KindBlank}
	case ruleRe.MatchString(trimmed):
		return Block{Kind: KindRule}
	}
	return Block{Kind: KindText}
}

func phaseNumber(line string) int {
	m := phaseNumberRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
