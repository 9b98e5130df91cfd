// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LessonTypeDefault is the only lesson type the typing app understands today.
const LessonTypeDefault = "default"

// FixedBonusPoints is awarded to lessons in categories starting with "1" or "2".
const FixedBonusPoints = 30

// Lesson is one typing exercise as stored in the lessons collection.
// Field names in the firestore tags match what the mobile clients read.
type Lesson struct {
	// ID is the position of the lesson in the source file, starting at 0.
	// It is data, not the document key.
	ID int `json:"id" yaml:"id" firestore:"id"`

	// Type is always LessonTypeDefault.
	Type string `json:"type" yaml:"type" firestore:"type"`

	// Category and Title come from the most recent header line.
	Category string `json:"category" yaml:"category" firestore:"category"`
	Title    string `json:"title" yaml:"title" firestore:"title"`

	// Content is the trimmed text the user types.
	Content string `json:"content" yaml:"content" firestore:"content"`

	// BonusPoints is FixedBonusPoints for beginner categories, else the
	// character length of Content.
	BonusPoints int `json:"bonusPoints" yaml:"bonusPoints" firestore:"bonusPoints"`
}

// ConfigDocument tells clients what changed since their last download.
type ConfigDocument struct {
	DownloadAll      bool  `json:"downloadAll" yaml:"downloadAll" firestore:"downloadAll"`
	TotalLessonCount int   `json:"totalLessonCount" yaml:"totalLessonCount" firestore:"totalLessonCount"`
	NewLessonIDs     []int `json:"newLessonIds" yaml:"newLessonIds" firestore:"newLessonIds"`
}
