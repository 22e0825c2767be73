package db

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/jsphweid/musicbox/constants"
)

// SongMetadata is the curated record kept alongside scraped sheets.
type SongMetadata struct {
	Artist  string
	Release string
	Title   string
	Year    uint
}

// GetSongMetadatas batch-fetches metadata records keyed by
// "Artist - Title". Keys with no record are simply absent from the
// result; enrichment is best effort and the pipeline works without it.
func GetSongMetadatas(keys []string) (map[string]SongMetadata, error) {
	if len(keys) > 10 {
		return nil, fmt.Errorf("not supposed to pass in more than 10 keys, got %v", len(keys))
	}

	res := make(map[string]SongMetadata)
	if len(keys) == 0 {
		return res, nil
	}

	endpoint := constants.GetMetadataEndpoint()
	if endpoint == "" {
		return res, nil
	}

	var dbKeys []map[string]*dynamodb.AttributeValue
	for _, k := range keys {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(k),
		}
		dbKeys = append(dbKeys, key)
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}

	client := dynamodb.New(sess)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			constants.MetadataTable: {Keys: dbKeys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}

	for _, v := range dbres.Responses[constants.MetadataTable] {
		var s SongMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		if v["Artist"] != nil && v["Artist"].S != nil {
			s.Artist = *v["Artist"].S
		}
		if v["Release"] != nil && v["Release"].S != nil {
			s.Release = *v["Release"].S
		}
		if v["Title"] != nil && v["Title"].S != nil {
			s.Title = *v["Title"].S
		}
		res[*v["PK"].S] = s
	}

	return res, nil
}
