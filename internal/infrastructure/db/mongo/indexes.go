package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func uniqueID() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

// pendingUnique allows at most one pending application per key. Decided
// applications fall out of the partial filter.
func pendingUnique(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: keys,
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": "pending"}),
	}
}

func byField(field string, order int) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: order}}}
}

// EnsureIndexes creates the indexes every repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	byEmail := bson.D{{Key: "email", Value: 1}}
	plan := map[string][]mongo.IndexModel{
		collUsers: {
			uniqueID(),
			{
				Keys:    bson.D{{Key: "email", Value: 1}, {Key: "user_type", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			byField("firm_lawyer.firm_id", 1),
		},
		collFirmClients: {
			uniqueID(),
			{Keys: byEmail, Options: options.Index().SetUnique(true)},
			byField("firm_client.law_firm_id", 1),
		},
		collLawyerApplications:     {uniqueID(), pendingUnique(byEmail)},
		collLawFirmApplications:    {uniqueID(), pendingUnique(byEmail)},
		collFirmLawyerApplications: {uniqueID(), pendingUnique(byEmail), byField("law_firm_id", 1)},
		collFirmClientApplications: {
			uniqueID(),
			pendingUnique(bson.D{{Key: "email", Value: 1}, {Key: "law_firm_id", Value: 1}}),
			byField("law_firm_id", 1),
		},
		collTasks:       {uniqueID(), byField("assigned_to", 1), byField("firm_id", 1)},
		collCases:       {uniqueID(), byField("user_id", 1)},
		collDocuments:   {uniqueID(), byField("user_id", 1)},
		collBookings:    {uniqueID(), byField("client_id", 1), byField("lawyer_id", 1)},
		collWaitlist:    {{Keys: byEmail, Options: options.Index().SetUnique(true)}},
		collChatHistory: {byField("user_id", 1), byField("timestamp", -1)},
		collCaseUpdates: {byField("client_id", 1)},
	}

	for coll, indexes := range plan {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
