package logsvc

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

// RollbarLogger prints to std and reports to rollbar when enabled.
//
// Args are read as: error (first one reported as the item's error),
// map[string]interface{} (merged into the item's extras), user.User (the
// item's person). Anything else is kept under the "args" extra.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(!conf.Debug && !conf.TestMode)
	return &RollbarLogger{std: std}
}

type entry struct {
	msg    string
	err    error
	extras map[string]interface{}
	person *user.User
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{msg: msg, extras: make(map[string]interface{})}
	var rest []interface{}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case error:
			if e.err == nil {
				e.err = v
			} else {
				rest = append(rest, v.Error())
			}
		case map[string]interface{}:
			for key, val := range v {
				e.extras[key] = val // later maps win
			}
		case user.User:
			if e.person == nil {
				usr := v
				e.person = &usr
			}
		default:
			rest = append(rest, v)
		}
	}
	if len(rest) > 0 {
		e.extras["args"] = rest
	}
	return e
}

func (l RollbarLogger) report(level string, e entry) {
	if e.person != nil {
		rollbar.SetPerson(strconv.Itoa(e.person.ID), e.person.Name, e.person.Email)
	} else {
		rollbar.ClearPerson()
	}
	if e.err != nil {
		extras := make(map[string]interface{}, len(e.extras)+1)
		for key, val := range e.extras {
			extras[key] = val
		}
		extras["message"] = e.msg
		rollbar.ErrorWithExtras(level, e.err, extras)
		return
	}
	rollbar.MessageWithExtras(level, e.msg, e.extras)
}

// format renders "msg key=value ..." with sorted keys.
func (e entry) format() string {
	var sb strings.Builder
	sb.WriteString(e.msg)
	if e.person != nil {
		fmt.Fprintf(&sb, " user=%d", e.person.ID)
	}
	keys := make([]string, 0, len(e.extras))
	for key := range e.extras {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&sb, " %s=%v", key, e.extras[key])
	}
	return sb.String()
}

func (l RollbarLogger) print(e entry) {
	l.std.Println(e.format())
	if e.err != nil {
		l.std.Printf("%+v\n", e.err)
	}
}

func (l RollbarLogger) log(level, msg string, args []interface{}) {
	e := newEntry(msg, args)
	l.report(level, e)
	l.print(e)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(rollbar.DEBUG, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(rollbar.INFO, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(rollbar.WARN, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(rollbar.ERR, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
