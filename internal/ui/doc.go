// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for managing revisions:
//  1. [RevisionListView] : Browse the revision chain with applied markers
//  2. [ConfirmView] : Confirm an upgrade or downgrade before it runs
//  3. [ResultView] : Display how many revisions were applied or reverted
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Engine operations run inside tea commands so the interface stays responsive.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, u/d, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
