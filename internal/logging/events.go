package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/technotes/internal/filex"
)

// Event log files kept under the logs directory.
const (
	RequestLogFile = "reqLog.log"
	ErrorLogFile   = "errLog.log"
	DBErrorLogFile = "dbErrLog.log"
)

// eventTimeLayout renders as yyyyMMdd<TAB>HH:mm:ss.
const eventTimeLayout = "20060102\t15:04:05"

// EventLog appends tab separated lines of the form
//
//	<date>\t<time>\t<uuid>\t<message>
//
// to named files inside a single directory. The directory is created on the
// first write. EventLog is safe for concurrent use.
type EventLog struct {
	dir   string
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewEventLog(dir string) *EventLog {
	return &EventLog{
		dir:   dir,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Dir returns the configured logs directory.
func (l *EventLog) Dir() string {
	return l.dir
}

// Log appends message to fileName, tagged with the current time and a fresh uuid.
func (l *EventLog) Log(message, fileName string) error {
	line := fmt.Sprintf("%s\t%s\t%s\n", l.now().Format(eventTimeLayout), l.newID(), message)

	l.mu.Lock()
	defer l.mu.Unlock()

	dir, err := filex.EnsureDir(l.dir)
	if err != nil {
		return fmt.Errorf("event log dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write event log: %w", err)
	}

	return f.Close()
}
