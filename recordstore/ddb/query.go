/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/indexstore/indexstruct"
)

// All lists every record through GSI1, ordered by index id.
// Each page is retried on transient errors.
func (d *Store) All(ctx context.Context) ([]*indexstruct.Record, error) {
	gsi, _ := GetGSIConfig(listingGSI)
	keyCond := fmt.Sprintf("%s = :pk", gsi.PartitionKeyName)

	input := &sdk.QueryInput{
		TableName:              &d.tableName,
		IndexName:              aws.String(gsi.IndexName),
		KeyConditionExpression: &keyCond,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: listingPartition},
		},
		Limit:            aws.Int32(d.options.PageSize),
		ScanIndexForward: aws.Bool(true),
	}

	var records []*indexstruct.Record
	pageNumber := 0
	paginator := sdk.NewQueryPaginator(d.client, input)
	for paginator.HasMorePages() {
		out, err := d.nextPageWithRetry(ctx, paginator)
		if err != nil {
			return nil, err
		}
		pageNumber++

		for _, raw := range out.Items {
			rec, err := unmarshalRecord(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		d.logger.DebugContext(ctx, "listed record page", "page", pageNumber, "items", len(out.Items))
	}

	return records, nil
}

// nextPageWithRetry fetches the next page with configurable retry logic.
// A failed NextPage call does not advance the paginator, so retrying is safe.
func (d *Store) nextPageWithRetry(ctx context.Context, paginator *sdk.QueryPaginator) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= d.options.MaxRetries; attempt++ {
		// Check context before retry
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := paginator.NextPage(ctx)
		if err == nil {
			return out, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return nil, fmt.Errorf("query error: %w", err)
		}

		// Don't sleep after last attempt
		if attempt < d.options.MaxRetries {
			backoff := time.Duration(attempt+1) * d.options.RetryBackoff
			d.logger.WarnContext(ctx, "retrying record query", "attempt", attempt+1, "backoff", backoff, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", d.options.MaxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	// Check for specific retryable DynamoDB errors
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	if errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal) {
		return true
	}

	// Check for AWS SDK retryable errors
	var retryable interface{ IsRetryable() bool }
	if errors.As(err, &retryable) {
		return retryable.IsRetryable()
	}

	return false
}
