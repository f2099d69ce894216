package exam

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const examsCollection = "exams"

// MongoStore keeps each exam as one document in the exams collection. A
// unique compound index over the five metadata fields makes the question
// append/remove filter deterministic.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(ctx context.Context, client *mongo.Client, dbName string) (*MongoStore, error) {
	coll := client.Database(dbName).Collection(examsCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "division", Value: 1},
			{Key: "level", Value: 1},
			{Key: "term", Value: 1},
			{Key: "subject", Value: 1},
			{Key: "year", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_exam_metadata"),
	})
	if err != nil {
		return nil, err
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) ListExams(ctx context.Context) ([]Exam, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	exams := []Exam{}
	if err := cur.All(ctx, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (s *MongoStore) GetExam(ctx context.Context, id string) (Exam, error) {
	var e Exam
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Exam{}, ErrNotFound
	}
	if err != nil {
		return Exam{}, err
	}
	return e, nil
}

func (s *MongoStore) CreateExam(ctx context.Context, e Exam) (Exam, error) {
	e.ID = primitive.NewObjectID().Hex()
	e.CreatedAt = time.Now().Unix()
	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Exam{}, invalidf("exam already exists for this division/level/term/subject/year")
		}
		return Exam{}, err
	}
	return e, nil
}

func (s *MongoStore) ReplaceExam(ctx context.Context, id string, e Exam) (Exam, error) {
	e.ID = id
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var out Exam
	err := s.coll.FindOneAndReplace(ctx, bson.D{{Key: "_id", Value: id}}, e, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Exam{}, ErrNotFound
	}
	if err != nil {
		return Exam{}, err
	}
	return out, nil
}

func (s *MongoStore) DeleteExam(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) AppendQuestion(ctx context.Context, f Filter, q Question) (Exam, error) {
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "questions", Value: q}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out Exam
	err := s.coll.FindOneAndUpdate(ctx, filterDoc(f), update, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Exam{}, ErrNotFound
	}
	if err != nil {
		return Exam{}, err
	}
	return out, nil
}

func (s *MongoStore) RemoveQuestion(ctx context.Context, f Filter, index int) (Exam, error) {
	var e Exam
	err := s.coll.FindOne(ctx, filterDoc(f)).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Exam{}, ErrNotFound
	}
	if err != nil {
		return Exam{}, err
	}
	qs, err := removeQuestionAt(e.Questions, index)
	if err != nil {
		return Exam{}, err
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "questions", Value: qs}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out Exam
	err = s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: e.ID}}, update, opts).Decode(&out)
	if err != nil {
		return Exam{}, err
	}
	return out, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func filterDoc(f Filter) bson.D {
	return bson.D{
		{Key: "division", Value: f.Division},
		{Key: "level", Value: f.Level},
		{Key: "term", Value: f.Term},
		{Key: "subject", Value: f.Subject},
		{Key: "year", Value: f.Year},
	}
}
