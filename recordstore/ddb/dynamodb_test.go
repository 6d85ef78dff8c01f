/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	storeerrors "github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/indexstruct"
	"github.com/suparena/indexstore/internal/logging"
)

// fakeDynamo is an in-memory API covering the calls Store makes.
type fakeDynamo struct {
	mu            sync.Mutex
	items         map[string]map[string]types.AttributeValue
	queryFailures int
	queryErr      error
	queryCalls    int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func attrS(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func itemKey(key map[string]types.AttributeValue) string {
	return attrS(key, "PK") + "|" + attrS(key, "SK")
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &sdk.GetItemOutput{Item: f.items[itemKey(params.Key)]}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[itemKey(params.Item)] = params.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := itemKey(params.Key)
	if _, ok := f.items[key]; !ok && params.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	delete(f.items, key)
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queryCalls++
	if f.queryFailures > 0 {
		f.queryFailures--
		return nil, &types.InternalServerError{Message: aws.String("internal error")}
	}
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	pk := attrS(params.ExpressionAttributeValues, ":pk")
	var matched []map[string]types.AttributeValue
	for _, it := range f.items {
		if attrS(it, "PK1") == pk {
			matched = append(matched, it)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return attrS(matched[i], "SK1") < attrS(matched[j], "SK1")
	})

	start := 0
	if params.ExclusiveStartKey != nil {
		after := attrS(params.ExclusiveStartKey, "SK1")
		for start < len(matched) && attrS(matched[start], "SK1") <= after {
			start++
		}
	}

	end := len(matched)
	if params.Limit != nil && start+int(*params.Limit) < end {
		end = start + int(*params.Limit)
	}

	out := &sdk.QueryOutput{Items: matched[start:end]}
	if end < len(matched) {
		last := matched[end-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"PK":  last["PK"],
			"SK":  last["SK"],
			"PK1": last["PK1"],
			"SK1": last["SK1"],
		}
	}
	return out, nil
}

func newTestStore(fake *fakeDynamo, opts ...Option) *Store {
	opts = append([]Option{WithLogger(logging.Noop()), WithRetryBackoff(time.Millisecond)}, opts...)
	return New(fake, "indices", opts...)
}

func mustRecord(t *testing.T, id string, payload indexstruct.Payload) *indexstruct.Record {
	t.Helper()
	rec, err := indexstruct.NewRecord(id, payload)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	return rec
}

func TestStorePutAndGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	store := newTestStore(fake)

	rec := mustRecord(t, "a", &indexstruct.List{Nodes: []string{"n1", "n2"}})
	rec.Summary = "all nodes"
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	raw := fake.items["INDEXSTRUCT#a|INDEXSTRUCT#a"]
	if raw == nil {
		t.Fatal("Expected item under expanded PK/SK")
	}
	if got := attrS(raw, "PK1"); got != "INDEXSTRUCT" {
		t.Errorf("Expected PK1 INDEXSTRUCT, got %q", got)
	}
	if got := attrS(raw, "SK1"); got != "a" {
		t.Errorf("Expected SK1 a, got %q", got)
	}
	if got := attrS(raw, "EntityType"); got != "list" {
		t.Errorf("Expected EntityType list, got %q", got)
	}

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.IndexID != "a" || got.Type != indexstruct.TypeList || got.Summary != "all nodes" {
		t.Errorf("Retrieved record mismatch: %+v", got)
	}
	if string(got.Data) != string(rec.Data) {
		t.Errorf("Expected data %s, got %s", rec.Data, got.Data)
	}
	want := time.Time(rec.CreatedAt).Truncate(time.Millisecond)
	if !time.Time(got.CreatedAt).Equal(want) {
		t.Errorf("Expected CreatedAt %v, got %v", want, time.Time(got.CreatedAt))
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(newFakeDynamo())
	_, err := store.Get(context.Background(), "missing")
	if !storeerrors.IsNotFound(err) {
		t.Fatalf("Expected not found error, got %v", err)
	}
}

func TestStorePutInvalid(t *testing.T) {
	store := newTestStore(newFakeDynamo())
	err := store.Put(context.Background(), &indexstruct.Record{Type: indexstruct.TypeList})
	if !storeerrors.IsValidationError(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestStoreKeepsUnknownTypes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(newFakeDynamo())

	if err := store.Put(ctx, &indexstruct.Record{IndexID: "q", Type: "sql"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := store.Get(ctx, "q")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Type != "sql" {
		t.Errorf("Expected type sql, got %q", got.Type)
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(newFakeDynamo())

	if err := store.Put(ctx, mustRecord(t, "a", &indexstruct.Empty{})); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "a"); !storeerrors.IsNotFound(err) {
		t.Fatalf("Expected not found after delete, got %v", err)
	}
	if err := store.Delete(ctx, "a"); !storeerrors.IsNotFound(err) {
		t.Fatalf("Expected not found deleting twice, got %v", err)
	}
}

func TestStoreIDsWithDollarSigns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(newFakeDynamo())
	ids := []string{"cost$1", "a$b", "${IndexID}", "$0", "plain"}

	for _, id := range ids {
		if err := store.Put(ctx, mustRecord(t, id, &indexstruct.Empty{})); err != nil {
			t.Fatalf("Put(%q) failed: %v", id, err)
		}
	}

	for _, id := range ids {
		got, err := store.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", id, err)
		}
		if got.IndexID != id {
			t.Errorf("Get(%q) returned %q", id, got.IndexID)
		}

		// Lookup keys must match the keys Put wrote
		putKeys, err := expandMacros(recordIndexMap, item{IndexID: id})
		if err != nil {
			t.Fatalf("expandMacros failed: %v", err)
		}
		getKeys := expandStringKey(recordIndexMap, id)
		for _, field := range []string{"PK", "SK"} {
			if putKeys[field] != getKeys[field] {
				t.Errorf("%s for %q: put %q, get %q", field, id, putKeys[field], getKeys[field])
			}
		}
	}

	if err := store.Delete(ctx, "cost$1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "cost$1"); !storeerrors.IsNotFound(err) {
		t.Fatalf("Expected not found after delete, got %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != len(ids)-1 {
		t.Fatalf("Expected %d records after delete, got %d", len(ids)-1, len(all))
	}
	for _, rec := range all {
		if rec.IndexID == "cost$1" {
			t.Errorf("Deleted record still listed")
		}
	}
}

func TestStoreAll(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, store *Store, ids ...string) {
		t.Helper()
		for _, id := range ids {
			if err := store.Put(ctx, mustRecord(t, id, &indexstruct.Empty{})); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
		}
	}

	t.Run("Paginates", func(t *testing.T) {
		fake := newFakeDynamo()
		store := newTestStore(fake, WithPageSize(2))
		seed(t, store, "e", "c", "a", "d", "b")

		all, err := store.All(ctx)
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		var ids []string
		for _, rec := range all {
			ids = append(ids, rec.IndexID)
		}
		want := []string{"a", "b", "c", "d", "e"}
		if len(ids) != len(want) {
			t.Fatalf("Expected %v, got %v", want, ids)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("Expected %v, got %v", want, ids)
			}
		}
		if fake.queryCalls != 3 {
			t.Errorf("Expected 3 pages, got %d", fake.queryCalls)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		store := newTestStore(newFakeDynamo())
		all, err := store.All(ctx)
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(all) != 0 {
			t.Fatalf("Expected no records, got %d", len(all))
		}
	})

	t.Run("RetriesTransientErrors", func(t *testing.T) {
		fake := newFakeDynamo()
		store := newTestStore(fake, WithMaxRetries(3))
		seed(t, store, "a")
		fake.queryFailures = 2

		all, err := store.All(ctx)
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("Expected 1 record, got %d", len(all))
		}
		if fake.queryCalls != 3 {
			t.Errorf("Expected 3 query calls, got %d", fake.queryCalls)
		}
	})

	t.Run("GivesUpAfterRetries", func(t *testing.T) {
		fake := newFakeDynamo()
		store := newTestStore(fake, WithMaxRetries(1))
		fake.queryFailures = 10

		if _, err := store.All(ctx); err == nil {
			t.Fatal("Expected error after exhausting retries")
		}
		if fake.queryCalls != 2 {
			t.Errorf("Expected 2 query calls, got %d", fake.queryCalls)
		}
	})

	t.Run("DoesNotRetryPermanentErrors", func(t *testing.T) {
		fake := newFakeDynamo()
		store := newTestStore(fake, WithMaxRetries(3))
		fake.queryErr = &types.ResourceNotFoundException{Message: aws.String("no table")}

		if _, err := store.All(ctx); err == nil {
			t.Fatal("Expected error")
		}
		if fake.queryCalls != 1 {
			t.Errorf("Expected 1 query call, got %d", fake.queryCalls)
		}
	})

	t.Run("CanceledContext", func(t *testing.T) {
		fake := newFakeDynamo()
		store := newTestStore(fake)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := store.All(canceled); err != context.Canceled {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
	})
}

func TestExpandMacros(t *testing.T) {
	expanded, err := expandMacros(recordIndexMap, item{IndexID: "abc", EntityType: "tree"})
	if err != nil {
		t.Fatalf("expandMacros failed: %v", err)
	}
	want := map[string]string{
		"PK":  "INDEXSTRUCT#abc",
		"SK":  "INDEXSTRUCT#abc",
		"PK1": "INDEXSTRUCT",
		"SK1": "abc",
	}
	for k, v := range want {
		if expanded[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, expanded[k])
		}
	}
}

func TestGSIConfig(t *testing.T) {
	gsi1Config, ok := GetGSIConfig("GSI1")
	if !ok {
		t.Fatal("GSI1 config should exist")
	}
	if gsi1Config.PartitionKeyName != "PK1" || gsi1Config.SortKeyName != "SK1" {
		t.Errorf("Unexpected GSI1 config: %+v", gsi1Config)
	}
	if _, ok := GetGSIConfig("GSI9"); ok {
		t.Error("GSI9 config should not exist")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"throughput", &types.ProvisionedThroughputExceededException{}, true},
		{"request limit", &types.RequestLimitExceeded{}, true},
		{"internal", &types.InternalServerError{}, true},
		{"resource not found", &types.ResourceNotFoundException{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%T) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
