package models

// ============================================================================
// TITLE CONSTANTS
// ============================================================================

// MaxTitleLength is the longest title accepted for boards, lists and cards
const MaxTitleLength = 255

// ============================================================================
// ORDER CONSTANTS
// ============================================================================

// FirstOrder is the order value of the first entity in a sequence.
// Orders are dense: the entity at index i has order i.
const FirstOrder = 0
