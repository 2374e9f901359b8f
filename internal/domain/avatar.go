package domain

import "fmt"

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg"

// AvatarURL derives a deterministic avatar URL from a username.
func AvatarURL(username string) string {
	return fmt.Sprintf("%s?seed=%s", avatarBaseURL, username)
}
