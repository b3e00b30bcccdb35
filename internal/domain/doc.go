// Package domain holds the todo entity and its validation rules. It has no
// knowledge of storage, transport, or rendering; every other layer depends
// on it and maps its sentinel errors to their own vocabulary.
package domain
