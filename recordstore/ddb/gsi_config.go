/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

// GSIConfig holds the configuration for GSI key mappings
type GSIConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the actual partition key attribute name in the GSI (e.g., "PK1")
	PartitionKeyName string
	// SortKeyName is the actual sort key attribute name in the GSI (e.g., "SK1")
	SortKeyName string
}

// DefaultGSIConfigs holds the default GSI configurations
var DefaultGSIConfigs = map[string]GSIConfig{
	"GSI1": {
		IndexName:        "GSI1",
		PartitionKeyName: "PK1",
		SortKeyName:      "SK1",
	},
}

// GetGSIConfig returns the GSI configuration for a given index name
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	config, ok := DefaultGSIConfigs[indexName]
	return config, ok
}

// listingGSI is the index All queries; every record shares one partition on it.
const listingGSI = "GSI1"

// recordIndexMap lays records out in the single table. Every record is its own
// item collection on the base table and is listed under a fixed partition on GSI1.
var recordIndexMap = map[string]string{
	"PK":  "INDEXSTRUCT#{IndexID}",
	"SK":  "INDEXSTRUCT#{IndexID}",
	"PK1": "INDEXSTRUCT",
	"SK1": "{IndexID}",
}

const listingPartition = "INDEXSTRUCT"

// nodeIndexMap lays document nodes out in the same table. Nodes carry no GSI1 keys,
// so All never lists them.
var nodeIndexMap = map[string]string{
	"PK": "NODE#{NodeID}",
	"SK": "NODE#{NodeID}",
}
