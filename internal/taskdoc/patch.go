package taskdoc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidCheckpoint is returned when a checkpoint index does not point at a
// checkpoint header. It indicates a caller bug, not a document problem.
var ErrInvalidCheckpoint = errors.New("invalid checkpoint")

// GitCommitsHeader is the header of the multi-line commit list.
const GitCommitsHeader = "Git Commits:"

// Commit is a commit reference recorded under a checkpoint.
type Commit struct {
	Hash    string
	Message string
}

// Bullet renders the commit as a list entry.
func (c Commit) Bullet() string {
	return fmt.Sprintf("- `%s` - %s", c.Hash, c.Message)
}

var (
	inlineCommitRe = regexp.MustCompile("`([^`]+)`\\s*-\\s*(.+)")
	bareCommitRe   = regexp.MustCompile(`^([0-9A-Fa-f]{4,40})\s+-\s+(.+)$`)
)

// Extent returns the half-open line range [start, end) covered by the
// checkpoint whose header sits at line. The range ends at the next checkpoint
// header, phase header, or horizontal rule, or at the end of the document.
func (d *Document) Extent(line int) (start, end int, err error) {
	if line < 0 || line >= len(d.Lines) {
		return 0, 0, fmt.Errorf("%w: line %d out of range (document has %d lines)", ErrInvalidCheckpoint, line, len(d.Lines))
	}
	if classifyLine(d.Lines[line]).Kind != KindCheckpoint {
		return 0, 0, fmt.Errorf("%w: line %d is not a checkpoint header", ErrInvalidCheckpoint, line)
	}

	end = line + 1
	for end < len(d.Lines) && !classifyLine(d.Lines[end]).Kind.IsBoundary() {
		end++
	}
	return line, end, nil
}

// AddCommit records commit under the checkpoint whose header is at line.
// Exactly one bullet for commit is added; calling it twice adds two.
func (d *Document) AddCommit(line int, commit Commit) error {
	start, end, err := d.Extent(line)
	if err != nil {
		return err
	}

	gitLine, statusLine, notesLine := -1, -1, -1
	for i := start + 1; i < end; i++ {
		switch classifyLine(d.Lines[i]).Kind {
		case KindGitCommits:
			if gitLine < 0 {
				gitLine = i
			}
		case KindStatus:
			if statusLine < 0 {
				statusLine = i
			}
		case KindNotes:
			if notesLine < 0 {
				notesLine = i
			}
		}
	}

	switch {
	case gitLine >= 0:
		d.appendToCommitList(gitLine, end, commit)
	case statusLine >= 0:
		d.insertCommitSection(statusLine, commit)
	case notesLine >= 0:
		d.insertCommitSection(notesLine, commit)
	default:
		d.insertCommitSection(end, commit)
	}
	return nil
}

// appendToCommitList adds commit to the section headed at header. A
// single-line "Git Commit: ..." header is first turned into a list whose first
// bullet is the inline entry.
func (d *Document) appendToCommitList(header, end int, commit Commit) {
	last := -1
	if existing, ok := inlineEntry(d.Lines[header]); ok {
		d.Lines[header] = GitCommitsHeader
		d.insert(header+1, existing)
		end++
		last = header + 1
	} else if strings.HasPrefix(d.Lines[header], "Git Commit:") {
		d.Lines[header] = GitCommitsHeader
	}

	i := header + 1
	if last >= 0 {
		i = last + 1
	}
	for ; i < end; i++ {
		kind := classifyLine(d.Lines[i]).Kind
		if kind == KindCommitBullet {
			last = i
			continue
		}
		if kind == KindBlank {
			continue
		}
		break
	}

	at := header + 1
	if last >= 0 {
		at = last + 1
	}
	d.insert(at, commit.Bullet())
}

// inlineEntry returns the bullet for text following the colon of a commit
// header, or false when the header has nothing after it.
func inlineEntry(line string) (string, bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimSpace(line[idx+1:])
	if rest == "" {
		return "", false
	}
	if m := inlineCommitRe.FindStringSubmatch(rest); m != nil {
		return Commit{Hash: m[1], Message: strings.TrimSpace(m[2])}.Bullet(), true
	}
	if m := bareCommitRe.FindStringSubmatch(rest); m != nil {
		return Commit{Hash: m[1], Message: strings.TrimSpace(m[2])}.Bullet(), true
	}
	return "- " + rest, true
}

// insertCommitSection creates a new commit list before line at.
func (d *Document) insertCommitSection(at int, commit Commit) {
	d.insert(at, GitCommitsHeader, commit.Bullet(), "")
}
