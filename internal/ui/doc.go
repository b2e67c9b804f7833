// Package ui is the terminal client for TodoService, built on Bubble Tea.
//
// Core pieces:
//   - Router: the root tea.Model. It owns the current route, mounts a fresh View on
//     every navigation and renders toasts.
//   - ListView: the "/" route. Lists todos, hosts the create form, deletes and
//     navigates to edit.
//   - EditView: the "/Todo/Edit/{id}" route. Loads one todo and submits updates.
//
// Views never talk to each other. Each one loads what it needs from TodoAPI.
package ui
