package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoHealthChecker pings the primary of the connected deployment.
type MongoHealthChecker struct {
	client *mongo.Client
}

func NewMongoHealthChecker(client *mongo.Client) *MongoHealthChecker {
	return &MongoHealthChecker{client: client}
}

func (c *MongoHealthChecker) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}
