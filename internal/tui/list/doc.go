// Package listview provides a small scrolling selection list for Bubble Tea
// screens. Only a fixed window of rows around the cursor is rendered.
package listview
