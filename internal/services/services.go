// Package services orchestrates ledger operations across the table store
// and the sync notification channel.
package services

import "context"

// SyncNotifier announces that a table changed locally so the sync worker
// can mirror it out. A nil notifier disables notifications.
type SyncNotifier interface {
	PublishTableSync(ctx context.Context, table string) error
}
