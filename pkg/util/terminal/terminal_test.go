package terminal

import (
	"testing"

	"github.com/enescakir/emoji"
	"github.com/stretchr/testify/assert"
)

func TestColoredPrints(t *testing.T) {
	tests := []struct {
		name  string
		print func(string)
		color string
	}{
		{name: "green", print: PrintGreen, color: colorGreen},
		{name: "red", print: PrintRed, color: colorRed},
		{name: "yellow", print: PrintYellow, color: colorYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := CaptureOutput(func() error {
				tt.print("Published chartName-1337.tar.gz")
				return nil
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.color+"Published chartName-1337.tar.gz"+colorReset+"\n", out)
		})
	}
}

func TestEmojis(t *testing.T) {
	assert.Equal(t, emoji.CheckMarkButton.String(), GetCheckMarkEmoji())
	assert.Equal(t, emoji.Warning.String(), GetWarningEmoji())
	assert.Equal(t, emoji.CrossMark.String(), GetErrorEmoji())
	assert.Equal(t, emoji.Package.String(), GetPackageEmoji())
	assert.Equal(t, emoji.Rocket.String(), GetRocketEmoji())
}

func TestStatusEmoji(t *testing.T) {
	assert.Equal(t, GetCheckMarkEmoji(), StatusEmoji(true))
	assert.Equal(t, GetErrorEmoji(), StatusEmoji(false))
}
