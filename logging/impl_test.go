package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.viam.com/test"
)

// consoleLine splits one console line into time, level, the optional logger name, caller,
// message and the decoded fields.
type consoleLine struct {
	level   string
	name    string
	caller  string
	message string
	fields  map[string]interface{}
}

func readConsoleLine(t *testing.T, buf *bytes.Buffer, named bool) consoleLine {
	t.Helper()
	line, err := buf.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)
	parts := strings.Split(strings.TrimSuffix(line, "\n"), "\t")
	_, err = time.Parse(DefaultTimeFormatStr, parts[0])
	test.That(t, err, test.ShouldBeNil)

	var out consoleLine
	out.level, parts = parts[1], parts[2:]
	if named {
		out.name, parts = parts[0], parts[1:]
	}
	out.caller, out.message = parts[0], parts[1]
	if len(parts) > 2 {
		test.That(t, json.Unmarshal([]byte(parts[2]), &out.fields), test.ShouldBeNil)
	}
	return out
}

func TestConsoleAppender(t *testing.T) {
	var buf bytes.Buffer
	logger := newImpl("", DEBUG, true, NewWriterAppender(&buf))

	logger.Infof("column %d selected", 2)
	line := readConsoleLine(t, &buf, false)
	test.That(t, line.level, test.ShouldEqual, "INFO")
	test.That(t, line.caller, test.ShouldStartWith, "logging/impl_test.go:")
	test.That(t, line.message, test.ShouldEqual, "column 2 selected")
	test.That(t, line.fields, test.ShouldBeNil)

	logger.Debugw("drive started", "left_power", -0.3, "left_target", 450)
	line = readConsoleLine(t, &buf, false)
	test.That(t, line.level, test.ShouldEqual, "DEBUG")
	test.That(t, line.fields, test.ShouldResemble, map[string]interface{}{
		"left_power":  -0.3,
		"left_target": 450.0,
	})

	logger.Warnw("unpaired", "alone")
	line = readConsoleLine(t, &buf, false)
	test.That(t, line.fields["alone"], test.ShouldEqual, "unpaired log key")

	named := logger.Sublogger("mission").Sublogger("turn")
	named.Error("lost heading")
	line = readConsoleLine(t, &buf, true)
	test.That(t, line.level, test.ShouldEqual, "ERROR")
	test.That(t, line.name, test.ShouldEqual, "mission.turn")
	test.That(t, line.message, test.ShouldEqual, "lost heading")
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newImpl("", WARN, true, NewWriterAppender(&buf))

	logger.Debug("dropped")
	logger.Infow("dropped", "tick", 1)
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	logger.Warn("kept")
	test.That(t, readConsoleLine(t, &buf, false).message, test.ShouldEqual, "kept")

	ctx := EnableDebugMode(context.Background(), "run42")
	test.That(t, IsDebugMode(ctx), test.ShouldBeTrue)
	test.That(t, DebugKey(ctx), test.ShouldEqual, "run42")
	test.That(t, IsDebugMode(context.Background()), test.ShouldBeFalse)
	test.That(t, DebugKey(EnableDebugMode(context.Background(), "")), test.ShouldHaveLength, 8)

	logger.CDebugf(ctx, "heading %.1f", 12.5)
	line := readConsoleLine(t, &buf, false)
	test.That(t, line.level, test.ShouldEqual, "DEBUG")
	test.That(t, line.message, test.ShouldEqual, "[run42] heading 12.5")

	logger.CDebug(context.Background(), "dropped")
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	logger.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, ERROR)
	logger.Warn("dropped")
	test.That(t, buf.Len(), test.ShouldEqual, 0)
}

func TestLevelFromString(t *testing.T) {
	for str, expected := range map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warn":    WARN,
		"warning": WARN,
		"error":   ERROR,
	} {
		level, err := LevelFromString(str)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, expected)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"warn"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)
	out, err := json.Marshal(ERROR)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"error"`)
}

func TestObservedSublogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	sub := logger.Sublogger("drive").Sublogger("left")

	sub.Infow("moved", "ticks", 450)
	entries := observed.FilterMessage("moved").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "drive.left")
	test.That(t, entries[0].ContextMap()["ticks"], test.ShouldEqual, int64(450))

	// a sublogger level is its own
	sub.SetLevel(ERROR)
	sub.Info("quiet")
	logger.Info("loud")
	test.That(t, observed.FilterMessage("quiet").Len(), test.ShouldEqual, 0)
	test.That(t, observed.FilterMessage("loud").Len(), test.ShouldEqual, 1)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, file := NewFileLogger("run", path, 1, 1)
	logger.Infow("run started", "alliance", "red")
	logger.Debugw("mission", "loop", 0)
	test.That(t, file.Close(), test.ShouldBeNil)

	contents, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	test.That(t, lines, test.ShouldHaveLength, 2)

	var first map[string]interface{}
	test.That(t, json.Unmarshal([]byte(lines[0]), &first), test.ShouldBeNil)
	test.That(t, first["msg"], test.ShouldEqual, "run started")
	test.That(t, first["logger"], test.ShouldEqual, "run")
	test.That(t, first["level"], test.ShouldEqual, "INFO")
	test.That(t, first["alliance"], test.ShouldEqual, "red")
	test.That(t, lines[1], test.ShouldContainSubstring, `"loop":0`)
}
