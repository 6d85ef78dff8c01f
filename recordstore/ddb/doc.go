/*
Package ddb provides a DynamoDB implementation of the recordstore.Store interface.

The Store uses a single-table layout:
  - PK = SK = "INDEXSTRUCT#{IndexID}" addresses one record
  - EntityType holds the record's type discriminator
  - GSI1 (PK1 = "INDEXSTRUCT", SK1 = "{IndexID}") lists every record in id order

Keys are produced by macro expansion over the record's attributes:

	recordIndexMap := map[string]string{
	    "PK":  "INDEXSTRUCT#{IndexID}",
	    "SK":  "INDEXSTRUCT#{IndexID}",
	    "PK1": "INDEXSTRUCT",
	    "SK1": "{IndexID}",
	}

Listing:
All pages through GSI1 and retries transient errors per page:

	store := ddb.New(client, "indices",
	    ddb.WithPageSize(25),
	    ddb.WithMaxRetries(3),
	    ddb.WithRetryBackoff(500*time.Millisecond),
	)

Any client satisfying the API interface can be used, including *dynamodb.Client.
*/
package ddb
