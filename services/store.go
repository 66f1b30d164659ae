package services

import (
	"context"

	db "github.com/KanapuramVaishnavi/Core/config/db"
	redis "github.com/KanapuramVaishnavi/Core/config/redis"
	common "github.com/KanapuramVaishnavi/Core/coreServices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UserCollection         = "USER"
	PatientCollection      = "PATIENT"
	DoctorCollection       = "DOCTOR"
	ReceptionistCollection = "RECEPTIONIST"
	AppointmentCollection  = "APPOINTMENT"
	RoleCollection         = "ROLE"
)

const (
	UserKey         = "USER:"
	PatientKey      = "PATIENT:"
	DoctorKey       = "DOCTOR:"
	ReceptionistKey = "RECEPTIONIST:"
	AppointmentKey  = "APPOINTMENT:"
)

// Store access goes through these variables so tests can swap them out,
// the same way main_test.go intercepts startServer.
var (
	findDoc = func(ctx context.Context, collection string, filter bson.M) (map[string]interface{}, error) {
		coll := db.OpenCollections(collection)
		result := make(map[string]interface{})
		if err := db.FindOne(ctx, coll, filter, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	findDocs = func(ctx context.Context, collection string, filter bson.M) ([]interface{}, error) {
		coll := db.OpenCollections(collection)
		return db.FindAll(ctx, coll, filter, nil)
	}

	insertDoc = func(ctx context.Context, collection string, doc map[string]interface{}) error {
		coll := db.OpenCollections(collection)
		_, err := db.CreateOne(ctx, coll, doc)
		return err
	}

	updateDoc = func(ctx context.Context, collection string, filter, update bson.M) (int64, error) {
		coll := db.OpenCollections(collection)
		updated, err := db.UpdateOne(ctx, coll, filter, update)
		if err != nil {
			return 0, err
		}
		return updated.ModifiedCount, nil
	}

	removeDoc = func(ctx context.Context, collection string, filter bson.M) error {
		coll := db.OpenCollections(collection)
		_, err := db.DeleteOne(ctx, coll, filter)
		return err
	}

	countDocs = func(ctx context.Context, collection string, filter bson.M) (int64, error) {
		return db.DB.Collection(collection).CountDocuments(ctx, filter)
	}

	findPage = func(ctx context.Context, collection string, filter bson.M, sort bson.D, page, limit int64) ([]map[string]interface{}, error) {
		opts := options.Find().SetSkip((page - 1) * limit).SetLimit(limit)
		if len(sort) > 0 {
			opts = opts.SetSort(sort)
		}
		cursor, err := db.DB.Collection(collection).Find(ctx, filter, opts)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		docs := []map[string]interface{}{}
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}

	cachePut = func(ctx context.Context, key string, value interface{}) error {
		return redis.SetCache(ctx, key, value)
	}

	cacheFetch = func(ctx context.Context, key string, out *map[string]interface{}) (bool, error) {
		return redis.GetCache(ctx, key, out)
	}

	cacheDrop = func(ctx context.Context, key string) error {
		return redis.DeleteCache(ctx, key)
	}

	generateCode = func(collection string) (string, error) {
		return common.GenerateEmpCode(collection)
	}
)

func isNotFound(err error) bool {
	return err == mongo.ErrNoDocuments
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
