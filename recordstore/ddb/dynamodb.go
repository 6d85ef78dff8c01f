/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	storeerrors "github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/indexstruct"
	"github.com/suparena/indexstore/recordstore"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// Store implements recordstore.Store by using AWS DynamoDB as the underlying data store.
type Store struct {
	client    API
	tableName string
	options   Options
	logger    *slog.Logger
}

var _ recordstore.Store = (*Store)(nil)

// item is the attribute layout of a record. EntityType carries the type discriminator.
type item struct {
	IndexID    string `dynamodbav:"IndexID"`
	EntityType string `dynamodbav:"EntityType"`
	Summary    string `dynamodbav:"Summary,omitempty"`
	CreatedAt  string `dynamodbav:"CreatedAt,omitempty"`
	Data       string `dynamodbav:"Data,omitempty"`
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	// Convert keysInput to a map of attribute values
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")

			val, ok := av[key]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
		res[fieldName] = expanded
	}

	return res, nil
}

// expandStringKey replaces every macro in the index map with the provided key, taken literally.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It assumes that the expanded map has valid non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used when
// both keys are given, otherwise the default AWS credential chain applies.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, endpoint string) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(awsRegion),
	}
	if awsAccessKey != "" && awsSecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// New constructs a Store over an existing client.
func New(client API, tableName string, opts ...Option) *Store {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.PageSize <= 0 {
		options.PageSize = DefaultOptions().PageSize
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		client:    client,
		tableName: tableName,
		options:   options,
		logger:    logger.With("table", tableName),
	}
}

// NewDynamodbStore creates a client and constructs a Store over it.
func NewDynamodbStore(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, endpoint, tableName string, opts ...Option) (*Store, error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	store := New(client, tableName, opts...)
	store.logger.Info("DynamoDB client initialized", "region", awsRegion)
	return store, nil
}

// Get retrieves a single record by index id.
func (d *Store) Get(ctx context.Context, indexID string) (*indexstruct.Record, error) {
	keyMap, err := buildKeyFromExpanded(expandStringKey(recordIndexMap, indexID))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, storeerrors.NewNotFoundError(recordstore.RecordType, indexID)
	}

	return unmarshalRecord(out.Item)
}

// Put stores the record using macros in the record index map to populate
// partition/sort keys on the table and on GSI1.
func (d *Store) Put(ctx context.Context, record *indexstruct.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	it := item{
		IndexID:    record.IndexID,
		EntityType: string(record.Type),
		Summary:    record.Summary,
		Data:       string(record.Data),
	}
	if !time.Time(record.CreatedAt).IsZero() {
		it.CreatedAt = record.CreatedAt.String()
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	expanded, err := expandMacros(recordIndexMap, it)
	if err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes a record by index id.
func (d *Store) Delete(ctx context.Context, indexID string) error {
	keyMap, err := buildKeyFromExpanded(expandStringKey(recordIndexMap, indexID))
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           &d.tableName,
		Key:                 keyMap,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return storeerrors.NewNotFoundError(recordstore.RecordType, indexID)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// unmarshalRecord converts a raw item back into a record.
func unmarshalRecord(raw map[string]types.AttributeValue) (*indexstruct.Record, error) {
	var it item
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	if it.EntityType == "" {
		return nil, fmt.Errorf("missing EntityType attribute in item %q", it.IndexID)
	}

	rec := &indexstruct.Record{
		IndexID: it.IndexID,
		Type:    indexstruct.Type(it.EntityType),
		Summary: it.Summary,
	}
	if it.Data != "" {
		rec.Data = []byte(it.Data)
	}
	if it.CreatedAt != "" {
		createdAt, err := strfmt.ParseDateTime(it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CreatedAt of %q: %w", it.IndexID, err)
		}
		rec.CreatedAt = createdAt
	}
	return rec, nil
}
