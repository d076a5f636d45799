// Package board defines the project-board domain model: users, projects,
// cards, and the workflow rules that govern card movement between the four
// project lists.
package board
