package repos

import "github.com/skifte/skifte-server/storage"

// Storage key conventions shared by every repo. Id components are sanitized,
// the path separators between them are not.
func estateKey(estateId string) string {
	return "estates_" + storage.SanitizeKey(estateId)
}

func rolesKey(estateId string) string {
	return "roles_" + storage.SanitizeKey(estateId)
}

func commentsKey(estateId string) string {
	return "comments_" + storage.SanitizeKey(estateId)
}

func batchKey(estateId, uploadStamp string) string {
	return batchPrefix(estateId) + storage.SanitizeKey(uploadStamp)
}

func batchPrefix(estateId string) string {
	return "transactions/" + storage.SanitizeKey(estateId) + "/"
}

func cancellationKey(estateId, transactionId string) string {
	return "cancellations/" + storage.SanitizeKey(estateId) + "/" + storage.SanitizeKey(transactionId)
}
