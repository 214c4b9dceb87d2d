package session

import "fmt"

func cacheKeyBill(eventID string) string {
	return fmt.Sprintf("courtsplit:bill:%s", eventID)
}
