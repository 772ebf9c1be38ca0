package taskdoc

import (
	"errors"
	"fmt"
)

// ErrNoCheckpoint is the outcome shared by every "no checkpoint found" case.
var ErrNoCheckpoint = errors.New("no checkpoint found")

// ErrNoCompletedTask means no task in any phase carries a completion marker.
var ErrNoCompletedTask = fmt.Errorf("%w: no completed tasks", ErrNoCheckpoint)

// MissingCheckpointError means the phase of the last completed task has no
// checkpoint header.
type MissingCheckpointError struct {
	Phase int
}

func (e *MissingCheckpointError) Error() string {
	return fmt.Sprintf("%s: phase %d has no checkpoint header", ErrNoCheckpoint, e.Phase)
}

// Unwrap returns ErrNoCheckpoint.
func (e *MissingCheckpointError) Unwrap() error {
	return ErrNoCheckpoint
}

// Checkpoint is a located checkpoint header.
type Checkpoint struct {
	Line     int
	Phase    int
	Label    string
	Complete bool
}

// Outline is the result of scanning a document.
type Outline struct {
	Blocks      []Block
	Checkpoints []Checkpoint
	// LastCompletedPhase is the phase of the last completed task in document
	// order, or 0 when no completed task was seen.
	LastCompletedPhase int
}

// Scan classifies the document and collects checkpoints and the phase of the
// last completed task.
func (d *Document) Scan(opts Options) *Outline {
	out := &Outline{Blocks: d.Classify(opts)}

	currentPhase := 0
	for _, b := range out.Blocks {
		switch b.Kind {
		case KindPhase:
			currentPhase = b.Phase
		case KindCheckpoint:
			if b.Phase > 0 {
				out.Checkpoints = append(out.Checkpoints, Checkpoint{
					Line:     b.Line,
					Phase:    b.Phase,
					Label:    PhaseLabel(b.Phase),
					Complete: b.Complete,
				})
			}
		case KindTask:
			// Later completions overwrite earlier ones, even from lower phases.
			if currentPhase > 0 && b.Complete {
				out.LastCompletedPhase = currentPhase
			}
		}
	}
	return out
}

// Checkpoint returns the checkpoint for the last completed task's phase.
func (o *Outline) Checkpoint() (*Checkpoint, error) {
	if o.LastCompletedPhase == 0 {
		return nil, ErrNoCompletedTask
	}
	for i := range o.Checkpoints {
		if o.Checkpoints[i].Phase == o.LastCompletedPhase {
			cp := o.Checkpoints[i]
			return &cp, nil
		}
	}
	return nil, &MissingCheckpointError{Phase: o.LastCompletedPhase}
}

// Locate finds the checkpoint that should receive the next commit reference.
func (d *Document) Locate(opts Options) (*Checkpoint, error) {
	return d.Scan(opts).Checkpoint()
}

// PhaseLabel renders the human-readable label for a phase number.
func PhaseLabel(phase int) string {
	return fmt.Sprintf("Phase %d", phase)
}
