// Package theme handles CSS styling for noticad's banner windows.
// It supports loading themes from ~/.config/notica/themes/ and provides
// embedded defaults for use when no custom theme is configured.
package theme
