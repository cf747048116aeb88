// Package session keeps the arcade's player sessions in memory.
//
// Each session owns one engine.Selector, so a session is one player's
// screen: the game menu or the game being played. The Manager is safe for
// concurrent use and looks sessions up case-insensitively.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand, retried on
// collision. Callers may also pick their own ID.
//
// Lifecycle:
//
// Deleting a session, expiring it through CleanupExpiredSessions, or
// CloseAll on shutdown closes its selector, which cancels any computer
// move or snake tick still scheduled. Nothing is persisted.
//
// Usage:
//
//	manager := session.NewManager()
//	sess, err := manager.Create("", nil) // classic settings
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess.Selector.Select(engine.Snake)
package session
