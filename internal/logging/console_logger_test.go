//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package logging_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fileref/internal/logging"
)

func TestConsoleLogger_VerboseWhenEnabled(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	logger := logging.NewConsoleLoggerTo(&buf, true)

	logger.Verbose("scanning %s", "src")

	g.Expect(buf.String()).To(Equal("[VERBOSE] scanning src\n"))
}

func TestConsoleLogger_VerboseWhenDisabled(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	logger := logging.NewConsoleLoggerTo(&buf, false)

	logger.Verbose("scanning %s", "src")

	g.Expect(buf.String()).To(BeEmpty())
}

func TestConsoleLogger_InfoAndError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	logger := logging.NewConsoleLoggerTo(&buf, false)

	logger.Info("found %d entries", 3)
	logger.Error("could not list %q", "locked")
	logger.Info("100% done")

	g.Expect(buf.String()).To(Equal("found 3 entries\n[ERROR] could not list \"locked\"\n100% done\n"))
}

func TestConsoleLogger_ConcurrentWritesDoNotInterleave(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	logger := logging.NewConsoleLoggerTo(&buf, true)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Verbose("message %d", i)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	g.Expect(lines).To(HaveLen(20))
	for _, line := range lines {
		g.Expect(line).To(MatchRegexp(`^\[VERBOSE\] message \d+$`))
	}
}

func TestNullLogger_SatisfiesLogger(t *testing.T) {
	t.Parallel()

	var logger logging.Logger = logging.NewNullLogger()

	logger.Verbose("ignored %d", 1)
	logger.Info("ignored")
	logger.Error("ignored")
}
