package terminal

import (
	"fmt"

	"github.com/enescakir/emoji"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

func colored(color, text string) string {
	return color + text + colorReset
}

// Colored prints

func PrintGreen(text string) {
	fmt.Println(colored(colorGreen, text))
}

func PrintRed(text string) {
	fmt.Println(colored(colorRed, text))
}

func PrintYellow(text string) {
	fmt.Println(colored(colorYellow, text))
}

// Emojis

func GetCheckMarkEmoji() string {
	return emoji.CheckMarkButton.String()
}

func GetWarningEmoji() string {
	return emoji.Warning.String()
}

func GetErrorEmoji() string {
	return emoji.CrossMark.String()
}

func GetPackageEmoji() string {
	return emoji.Package.String()
}

func GetRocketEmoji() string {
	return emoji.Rocket.String()
}

func StatusEmoji(b bool) string {
	if b {
		return GetCheckMarkEmoji()
	}
	return GetErrorEmoji()
}
