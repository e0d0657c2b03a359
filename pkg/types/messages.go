package types

// Client -> Server (websocket, JSON text frames)
// NewSeed:
//   seed: string   // decimal integer, rejected with Error if not numeric
//
// RandomSeed: {}
//
// Click:
//   item: string   // picks the champion while selecting, toggles defeated while playing
//
// Undo: {}

// Server -> Client
// StateSnapshot:
//   snapshot: SessionSnapshot
//
// Error:
//   error: string  // bad json, unknown type, invalid seed, or why an intent was ignored
