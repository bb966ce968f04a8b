// Package ui renders progress lines and tables for command output.
package ui
