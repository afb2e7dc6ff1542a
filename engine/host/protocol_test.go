package host

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-stl/engine"
	"github.com/Carmen-Shannon/oxy-stl/engine/framing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessage(t *testing.T) {
	now := time.Unix(100, 0)
	tests := []struct {
		in   string
		want engine.Message
	}{
		{`{"type":"frame"}`, engine.MsgFrame{Time: now}},
		{`{"type":"resize","width":640,"height":480}`, engine.MsgResize{Width: 640, Height: 480}},
		{`{"type":"view","view":"left"}`, engine.MsgSelectView{View: framing.Left}},
		{`{"type":"pointerdown","x":1,"y":2,"button":2}`, engine.MsgPointerDown{X: 1, Y: 2, Button: engine.ButtonSecondary}},
		{`{"type":"pointerdown","x":1,"y":2,"button":0,"modifier":true}`, engine.MsgPointerDown{X: 1, Y: 2, Modifier: true}},
		{`{"type":"pointermove","x":3,"y":4}`, engine.MsgPointerMove{X: 3, Y: 4}},
		{`{"type":"pointerup"}`, engine.MsgPointerUp{}},
		{`{"type":"wheel","deltaY":-120}`, engine.MsgWheel{DeltaY: -120}},
		{`{"type":"visibility","visible":true}`, engine.MsgVisibility{Visible: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := decodeMessage([]byte(tt.in), now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{`{"type":"view","view":"sideways"}`, `{"type":"explode"}`, `not json`} {
		_, err := decodeMessage([]byte(bad), now)
		assert.Error(t, err, bad)
	}
}
