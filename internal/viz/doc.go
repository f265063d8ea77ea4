// Package viz draws renders and their progress in the terminal.
//
//   - [Preview]: true-color half-block picture of an image
//   - [BasinCanvas]: monochrome Braille plot of one basin
//   - [ProgressModel]: Bubble Tea view shown while a render runs
//   - Themes that double as render palettes
//
// Lipgloss degrades colors to what the terminal supports, so previews stay
// readable on 256-color and 16-color terminals.
package viz
