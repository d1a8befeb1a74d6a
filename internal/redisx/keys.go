package redisx

import "fmt"

const (
	// Lease for one background loop: lease:{loop} -> holder token
	KeyLease = "lease:%s"
)

func LeaseKey(loop string) string { return fmt.Sprintf(KeyLease, loop) }
