package contract

import "time"

const (
	UserCollection    = "users"
	RoomCollection    = "chatrooms"
	MessageCollection = "messages"
)

// Profile is the denormalized {uid, email} snapshot embedded in room documents.
type Profile struct {
	UID   string `firestore:"uid" json:"uid"`
	Email string `firestore:"email" json:"email"`
}

// User is a document in the users collection, mirrored from the identity
// provider on every successful login.
type User struct {
	UID         string    `firestore:"uid"`
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"displayName"`
	PhotoURL    string    `firestore:"photoURL,omitempty"`
	LastSeen    time.Time `firestore:"lastSeen,serverTimestamp"`
}

// Room is a document in the chatrooms collection. The document id is the
// chatkey of the two participants.
type Room struct {
	Participants       []string           `firestore:"participants"`
	Profiles           map[string]Profile `firestore:"participantsProfiles"`
	CreatedAt          time.Time          `firestore:"createdAt,serverTimestamp"`
	LastMessageAt      *time.Time         `firestore:"lastMessageAt"`
	LastMessagePreview string             `firestore:"lastMessagePreview"`
}

// Message is a document in a room's messages subcollection. Immutable.
type Message struct {
	ID          string    `firestore:"-" json:"id"`
	Content     string    `firestore:"content" json:"content"`
	SenderUID   string    `firestore:"senderUid" json:"senderUid"`
	SenderEmail string    `firestore:"senderEmail" json:"senderEmail"`
	Timestamp   time.Time `firestore:"timestamp,serverTimestamp" json:"timestamp"`
}
