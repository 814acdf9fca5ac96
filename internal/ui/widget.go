package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"

	"github.com/brogergvhs/scriptbox/internal/features/counter"
	"github.com/brogergvhs/scriptbox/internal/storage"
)

type button struct {
	Label   string
	Op      counter.Operation
	Enabled bool
}

const quitLabel = "quit"

// buttons mirrors the widget's −, + and reset buttons, gated on value.
func buttons(value int) []button {
	return []button{
		{Label: "−", Op: counter.OpDecrement, Enabled: counter.IsValidOperation(counter.OpDecrement, value)},
		{Label: "+", Op: counter.OpIncrement, Enabled: counter.IsValidOperation(counter.OpIncrement, value)},
		{Label: "reset", Op: counter.OpReset, Enabled: counter.IsValidOperation(counter.OpReset, value)},
	}
}

// Press applies op to the stored counter and returns the new value.
func Press(s storage.Storage, op counter.Operation) (int, error) {
	switch op {
	case counter.OpIncrement:
		return counter.Increment(s)
	case counter.OpDecrement:
		return counter.Decrement(s)
	case counter.OpReset:
		return 0, counter.Reset(s)
	}

	return counter.Get(s), fmt.Errorf("unknown operation %q", op)
}

// CounterWidget is the interactive terminal version of the counter.
type CounterWidget struct {
	Storage storage.Storage
	Stdin   io.ReadCloser
	Stdout  io.WriteCloser
	Log     *Logger
}

func (w *CounterWidget) Run() error {
	value := counter.Get(w.Storage)

	for {
		btns := buttons(value)
		items := make([]string, 0, len(btns)+1)
		for _, b := range btns {
			if b.Enabled {
				items = append(items, b.Label)
			} else {
				items = append(items, b.Label+" (disabled)")
			}
		}
		items = append(items, quitLabel)

		prompt := promptui.Select{
			Label:    counter.FormatDisplay(value),
			Items:    items,
			HideHelp: true,
			Stdin:    w.Stdin,
			Stdout:   w.Stdout,
		}

		idx, _, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if idx == len(btns) {
			return nil
		}
		if !btns[idx].Enabled {
			continue
		}

		value, err = Press(w.Storage, btns[idx].Op)
		if err != nil {
			return err
		}
		if w.Log != nil {
			w.Log.Debugf("counter %s -> %d\n", btns[idx].Op, value)
		}
	}
}
