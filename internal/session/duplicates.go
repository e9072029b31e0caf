package session

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/state"
)

// NoProjectMessage is shown when a duplicate scan is requested with nothing open
const NoProjectMessage = "No project open"

// ScanStatus is the duplicate scan's state
type ScanStatus int

const (
	ScanIdle ScanStatus = iota
	ScanPending
	ScanSucceeded
	ScanFailed
)

// String returns the status name
func (s ScanStatus) String() string {
	switch s {
	case ScanPending:
		return "pending"
	case ScanSucceeded:
		return "succeeded"
	case ScanFailed:
		return "failed"
	default:
		return "idle"
	}
}

// DuplicateScan drives one find-duplicates session of the duplicates dialog.
//
//	idle --Run--> pending --Settle(ok)--> succeeded
//	              pending --Settle(err)--> failed
//	succeeded|failed --Run--> pending
//	any --Close--> idle
//
// Each Close starts a new session number. Answers are settled against the
// session that issued them, so a result for a closed dialog never reaches a
// later one.
type DuplicateScan struct {
	session uint64
	status  ScanStatus
	root    string
	result  *domain.DuplicateResult
	errMsg  string
	logger  *slog.Logger
}

// NewDuplicateScan returns an idle scan
func NewDuplicateScan(logger *slog.Logger) *DuplicateScan {
	if logger == nil {
		logger = slog.Default()
	}
	return &DuplicateScan{logger: logger}
}

// Run starts a scan of the open project. Prior result and error are cleared
// before the pending state is entered. With no project open the scan fails
// locally and ErrNoProject is returned; the caller must not contact the backend.
// On success Run returns nil and Root() names the directory to scan.
func (d *DuplicateScan) Run(project *state.ProjectIdentity) error {
	d.result = nil
	d.errMsg = ""

	root, ok := project.RootPath()
	if !ok {
		d.status = ScanFailed
		d.errMsg = NoProjectMessage
		d.logger.Warn("duplicate scan without open project")
		return domain.ErrNoProject
	}

	d.root = root
	d.status = ScanPending
	d.logger.Info("duplicate scan started", "root", root)
	return nil
}

// Settle records the backend's answer for the given session. It applies while
// pending or settled, so with overlapping runs in one session the last call to
// settle wins. Answers for a closed session are dropped and Settle returns false.
func (d *DuplicateScan) Settle(session uint64, result domain.DuplicateResult, err error) bool {
	if d.status == ScanIdle || session != d.session {
		d.logger.Debug("dropping duplicate result for closed session", "session", session, "current", d.session)
		return false
	}
	if err != nil {
		d.status = ScanFailed
		d.result = nil
		d.errMsg = errorMessage(err)
		d.logger.Error("duplicate scan failed", "root", d.root, "error", err)
		return true
	}
	d.status = ScanSucceeded
	d.result = &result
	d.errMsg = ""
	d.logger.Info("duplicate scan finished", "root", d.root, "groups", GroupCount(result.Groups))
	return true
}

// Close discards the session and returns to idle
func (d *DuplicateScan) Close() {
	d.session++
	d.status = ScanIdle
	d.root = ""
	d.result = nil
	d.errMsg = ""
}

// Session identifies the current dialog session; pass it back to Settle
func (d *DuplicateScan) Session() uint64 { return d.session }

// Status returns the current state
func (d *DuplicateScan) Status() ScanStatus { return d.status }

// Pending reports whether a call is outstanding
func (d *DuplicateScan) Pending() bool { return d.status == ScanPending }

// Root is the directory of the latest Run
func (d *DuplicateScan) Root() string { return d.root }

// Result returns the successful result, nil otherwise
func (d *DuplicateScan) Result() *domain.DuplicateResult { return d.result }

// Error returns the failure message, "" otherwise
func (d *DuplicateScan) Error() string { return d.errMsg }

// Groups returns the current groups, nil without a result
func (d *DuplicateScan) Groups() [][]string {
	if d.result == nil {
		return nil
	}
	return d.result.Groups
}

// GroupCount is len(groups)
func GroupCount(groups [][]string) int {
	return len(groups)
}

// RedundantCount is the number of files that could be removed while keeping
// one copy per group: the sum of len(group)-1. Empty groups count as zero.
func RedundantCount(groups [][]string) int {
	n := 0
	for _, g := range groups {
		if len(g) > 1 {
			n += len(g) - 1
		}
	}
	return n
}

func errorMessage(err error) string {
	if errors.Is(err, domain.ErrNoProject) {
		return NoProjectMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "duplicate scan failed"
}
