package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInboundFrame_Valid(t *testing.T) {
	req := require.New(t)

	req.True(InboundFrame{ReceiverID: 2, Content: "hi"}.Valid())
	req.True(InboundFrame{ReceiverID: 2, Content: strings.Repeat("a", MaxContentBytes)}.Valid())

	req.False(InboundFrame{ReceiverID: 0, Content: "hi"}.Valid())
	req.False(InboundFrame{ReceiverID: -1, Content: "hi"}.Valid())
	req.False(InboundFrame{ReceiverID: 2, Content: ""}.Valid())
	req.False(InboundFrame{ReceiverID: 2, Content: strings.Repeat("a", MaxContentBytes+1)}.Valid())
}
