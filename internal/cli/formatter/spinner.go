package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []rune("◐◓◑◒")

const spinnerTick = 120 * time.Millisecond

// Spinner shows a rotating glyph next to a message on a single line while
// the planner works. The line is erased on Stop.
type Spinner struct {
	out  io.Writer
	msg  string
	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewSpinner(out io.Writer, msg string) *Spinner {
	return &Spinner{out: out, msg: msg, quit: make(chan struct{})}
}

func (s *Spinner) Start() {
	s.wg.Add(1)
	go s.spin()
}

func (s *Spinner) spin() {
	defer s.wg.Done()
	t := time.NewTicker(spinnerTick)
	defer t.Stop()

	frame := 0
	for {
		select {
		case <-s.quit:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-t.C:
			glyph := string(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Fprintf(s.out, "\r%s %s", StylePurple.Render(glyph), Dim(s.msg))
			frame++
		}
	}
}

// Stop is idempotent.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}

func StartSpinner(out io.Writer, msg string) func() {
	s := NewSpinner(out, msg)
	s.Start()
	return s.Stop
}
