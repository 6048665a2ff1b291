package document

import "go.mongodb.org/mongo-driver/bson/primitive"

type Document interface {
	GetID() primitive.ObjectID
}

// ParseObjectIDs converts hex ids, dropping duplicates and ids that are not
// valid ObjectIDs.
func ParseObjectIDs(ids []string) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if _, ok := seen[objectID]; ok {
			continue
		}
		seen[objectID] = struct{}{}
		objectIDs = append(objectIDs, objectID)
	}
	return objectIDs
}
