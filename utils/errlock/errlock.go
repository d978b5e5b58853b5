package errlock

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/findsatoshi/go-fst/cmd/utils"
)

const (
	fileName   = "errlock"
	maxFileLen = 5000
	dbPrefix   = "db: "
)

// Fault is the record kept in the lock file.
type Fault struct {
	DB     string
	Reason string
}

// LockedError is returned by Check when a previous fault locked the datadir.
type LockedError struct {
	Path  string
	Fault Fault
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s database faulted, fix the issue and then delete file %q: %s", e.Fault.DB, e.Path, e.Fault.Reason)
}

// Lock guards a ledger datadir. A datadir stays locked after a fatal database fault.
type Lock struct {
	dir string
}

// New returns the lock of the datadir. In-memory datadirs are never locked.
func New(datadir string) *Lock {
	return &Lock{dir: datadir}
}

func (l *Lock) disabled() bool {
	return l.dir == "" || l.dir == "inmemory"
}

// Path of the lock file.
func (l *Lock) Path() string {
	return filepath.Join(l.dir, fileName)
}

// Check returns *LockedError if the datadir is locked.
func (l *Lock) Check() error {
	if l.disabled() {
		return nil
	}
	fault, err := l.read()
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read lock file %s: %w", l.Path(), err)
	}
	return &LockedError{Path: l.Path(), Fault: fault}
}

// Permanent returns the crit callback of the named database.
// It locks the datadir and stops the program.
func (l *Lock) Permanent(db string) func(error) {
	return func(err error) {
		fault := Fault{DB: db, Reason: err.Error()}
		if werr := l.write(fault); werr != nil {
			utils.Fatalf("Failed to write lock file %s: %v\n%s database error:\n%s", l.Path(), werr, db, fault.Reason)
		}
		utils.Fatalf("Ledger is permanently stopping due to a %s database error. Please fix"+
			" the issue and then delete file %q. Error message:\n%s", db, l.Path(), fault.Reason)
	}
}

func (l *Lock) read() (Fault, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		return Fault{}, err
	}
	defer f.Close()

	// read no more than maxFileLen bytes
	r := bufio.NewReader(io.LimitReader(f, maxFileLen))
	first, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return Fault{}, err
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		return Fault{}, err
	}
	if !strings.HasPrefix(first, dbPrefix) {
		// not written by Permanent
		return Fault{Reason: first + string(rest)}, nil
	}
	return Fault{
		DB:     strings.TrimSuffix(strings.TrimPrefix(first, dbPrefix), "\n"),
		Reason: string(rest),
	}, nil
}

func (l *Lock) write(fault Fault) error {
	if l.disabled() {
		return nil
	}
	return os.WriteFile(l.Path(), []byte(dbPrefix+fault.DB+"\n"+fault.Reason), 0666)
}
