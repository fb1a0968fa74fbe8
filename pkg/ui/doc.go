// Package ui prints progress notices to the terminal.
package ui
