// Package ids generates sortable string identifiers for ledger rows.
package ids

import "github.com/segmentio/ksuid"

func New() string {
	return ksuid.New().String()
}
