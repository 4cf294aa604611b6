package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendOTP_NoHostLogsOnly(t *testing.T) {
	req := require.New(t)

	m := NewMailer("", 587, "", "", "no-reply@cyberlink.app")
	req.NoError(m.SendOTP("ada@example.com", "042917"))
}
