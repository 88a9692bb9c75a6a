package dynamodb

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// listCursor encodes the last-seen position of a transaction listing. It
// carries the GSI keys plus the table key, which is what DynamoDB hands back
// as LastEvaluatedKey. Because it names a position rather than an offset, the
// page after it is stable even when new transactions are inserted above it.
type listCursor struct {
	StudentId string `json:"s"`
	CreatedAt string `json:"c"`
	Id        string `json:"i"`
}

// encodeCursor turns a LastEvaluatedKey into an opaque token for the client.
func encodeCursor(lastKey map[string]types.AttributeValue) (string, error) {
	if lastKey == nil {
		return "", nil
	}

	cursor := listCursor{}
	if v, ok := lastKey["student_id"].(*types.AttributeValueMemberS); ok {
		cursor.StudentId = v.Value
	}
	if v, ok := lastKey["created_at"].(*types.AttributeValueMemberS); ok {
		cursor.CreatedAt = v.Value
	}
	if v, ok := lastKey["id"].(*types.AttributeValueMemberS); ok {
		cursor.Id = v.Value
	}

	raw, err := json.Marshal(cursor)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// decodeCursor turns an opaque token back into an ExclusiveStartKey.
func decodeCursor(token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}

	var cursor listCursor
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}

	return map[string]types.AttributeValue{
		"student_id": &types.AttributeValueMemberS{Value: cursor.StudentId},
		"created_at": &types.AttributeValueMemberS{Value: cursor.CreatedAt},
		"id":         &types.AttributeValueMemberS{Value: cursor.Id},
	}, nil
}
