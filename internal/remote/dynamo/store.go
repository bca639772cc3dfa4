package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dspolyakov/buildpad/internal/common"
	"github.com/dspolyakov/buildpad/internal/remote"
)

// API is the slice of the DynamoDB client the store uses.
type API interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store persists one entity kind in a DynamoDB table. Unlike Postgres,
// DynamoDB has no server clock, so the store stamps updated_at itself at
// write time; created_at is set once via if_not_exists.
type Store[R any] struct {
	api   API
	table string

	// now is the write clock; replaceable in tests.
	now func() time.Time
}

// NewProjectStore returns a store over the projects table.
func NewProjectStore(api API, table string) *Store[remote.ProjectRecord] {
	return &Store[remote.ProjectRecord]{api: api, table: table, now: func() time.Time { return time.Now().UTC() }}
}

// NewIdeaStore returns a store over the ideas table.
func NewIdeaStore(api API, table string) *Store[remote.IdeaRecord] {
	return &Store[remote.IdeaRecord]{api: api, table: table, now: func() time.Time { return time.Now().UTC() }}
}

// FetchAll queries the owner GSI, following pagination, and returns the
// records ordered by updated_at descending.
func (s *Store[R]) FetchAll(ctx context.Context, ownerID string) ([]R, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.api.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			IndexName:              aws.String(OwnerIndexName),
			KeyConditionExpression: aws.String("user_id = :uid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uid": &types.AttributeValueMemberS{Value: ownerID},
			},
			ScanIndexForward:  aws.Bool(false), // newest first
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", s.table, err)
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	records := make([]R, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("unmarshal %s items: %w", s.table, err)
	}
	return records, nil
}

// Upsert writes the record under its id, rejecting writes that would move
// an existing id to a different owner. The whole payload is replaced; only
// created_at survives from the previous version.
func (s *Store[R]) Upsert(ctx context.Context, ownerID string, record R) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	id, ok := item["id"].(*types.AttributeValueMemberS)
	if !ok || id.Value == "" {
		return common.ErrMalformedRecord
	}

	// Key and server-assigned attributes are set via the update
	// expression, not the payload.
	delete(item, "id")
	delete(item, "user_id")
	delete(item, "created_at")
	delete(item, "updated_at")

	names := make(map[string]string, len(item))
	values := make(map[string]types.AttributeValue, len(item)+3)
	assignments := make([]string, 0, len(item))

	keys := make([]string, 0, len(item))
	for k := range item {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		name := fmt.Sprintf("#a%d", i)
		value := fmt.Sprintf(":v%d", i)
		names[name] = k
		values[value] = item[k]
		assignments = append(assignments, name+" = "+value)
	}

	now, err := attributevalue.Marshal(s.now())
	if err != nil {
		return fmt.Errorf("marshal timestamp: %w", err)
	}
	values[":uid"] = &types.AttributeValueMemberS{Value: ownerID}
	values[":now"] = now

	expr := "SET user_id = :uid, created_at = if_not_exists(created_at, :now), updated_at = :now"
	for _, a := range assignments {
		expr += ", " + a
	}

	_, err = s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       map[string]types.AttributeValue{"id": id},
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_not_exists(id) OR user_id = :uid"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return common.ErrOwnerMismatch
		}
		return fmt.Errorf("upsert %s item: %w", s.table, err)
	}
	return nil
}

// Delete removes the item by id. Deleting an absent id succeeds.
func (s *Store[R]) Delete(ctx context.Context, id string) error {
	_, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("delete %s item: %w", s.table, err)
	}
	return nil
}
