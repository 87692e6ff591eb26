package spinner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/eduardofuncao/dbconnect/internal/styles"
)

const tick = 100 * time.Millisecond

var stages = []string{" ", ".", "o", "O", "@", "*"}

// Start draws a pulsing timer on w until the returned stop func is called.
// Nothing is drawn when w is not a terminal.
func Start(w io.Writer) (stop func()) {
	if !isTerminal(w) {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		wait(w, done)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

func wait(w io.Writer, done <-chan struct{}) {
	t := time.NewTicker(tick)
	defer t.Stop()

	var passed time.Duration
	for i := 0; ; i++ {
		fmt.Fprintf(w, "\r%s %.2fs", styles.Success.Render(stages[i%len(stages)]), passed.Seconds())
		select {
		case <-done:
			fmt.Fprint(w, "\r\033[K")
			return
		case <-t.C:
			passed += tick
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
