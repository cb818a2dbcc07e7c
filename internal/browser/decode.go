package browser

import (
	"context"

	"github.com/rohmanhakim/element-locator/internal/locator"
	"github.com/rohmanhakim/element-locator/internal/snapshot"
	"github.com/ysmood/gson"
)

// decodeEvalResult reads the object returned by evaluateScript. A null
// value means nothing matched.
func decodeEvalResult(value gson.JSON) (*locator.EvalResult, error) {
	if value.Nil() {
		return nil, nil
	}
	var res locator.EvalResult
	if err := value.Unmarshal(&res); err != nil {
		return nil, &BrowserError{Message: err.Error(), Cause: ErrCauseDecodeFailure}
	}
	return &res, nil
}

// decodeSnapshot reads the selector-map array returned by snapshotScript
// through the same record format used for recorded snapshot files.
func decodeSnapshot(value gson.JSON) (locator.Snapshot, error) {
	recorded, err := snapshot.FromRecords([]byte(value.JSON("", "")))
	if err != nil {
		return locator.Snapshot{}, &BrowserError{Message: err.Error(), Cause: ErrCauseDecodeFailure}
	}
	return recorded.Snapshot(context.Background())
}
