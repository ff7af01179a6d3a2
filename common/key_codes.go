package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA      = 65 // A key (ASCII)
	KeyM      = 77 // M key (ASCII)
	KeyP      = 80 // P key (ASCII)
	KeyR      = 82 // R key (ASCII)
	KeySpace  = 32 // Spacebar (ASCII)
	KeyComma  = 44 // Comma key (ASCII)
	KeyPeriod = 46 // Period key (ASCII)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
)

// Additional non-printable keys
const (
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)
