package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the captured log output contains a record with the
// given message.
func AssertLogged(t *testing.T, logs *SafeBuffer, msg string) {
	t.Helper()

	out := logs.String()
	require.True(t,
		strings.Contains(out, "msg="+msg) || strings.Contains(out, `msg="`+msg+`"`),
		"expected log record %q was not found in logs:\n%s", msg, out,
	)
}
