package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	appErrors "buzzy/pkg/errors"
	"buzzy/pkg/util"

	"buzzy/log"
)

// stderrTailLimit bounds how much subprocess stderr is carried into errors
// and logs. ffmpeg can emit megabytes on a bad input.
const stderrTailLimit = 2048

// Run executes a media binary with a hard timeout. On expiry the process is
// killed and the error carries CodeTimeout so callers can tell a hang from a
// bad invocation. Stdout is returned for probe-style commands.
func Run(ctx context.Context, bin string, args []string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	elapsed := time.Since(started)

	if err != nil {
		tail := util.TruncateForLog(stderr.String(), stderrTailLimit)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.GetLogger().Error("Run subprocess timed out",
				zap.String("bin", bin),
				zap.Duration("elapsed", elapsed),
				zap.String("stderr", tail))
			return "", appErrors.WrapWithDetail(appErrors.CodeTimeout,
				fmt.Sprintf("%s timed out after %s", bin, timeout), tail, err)
		}
		log.GetLogger().Error("Run subprocess failed",
			zap.String("bin", bin),
			zap.Strings("args", args),
			zap.String("stderr", tail),
			zap.Error(err))
		return "", appErrors.WrapWithDetail(appErrors.CodeExtractionFailed,
			fmt.Sprintf("%s exited with error", bin), tail, err)
	}

	log.GetLogger().Debug("Run subprocess finished",
		zap.String("bin", bin),
		zap.Duration("elapsed", elapsed))
	return stdout.String(), nil
}
