package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
)

type scheduleDocument struct {
	Day       string `bson:"day"`
	StartTime string `bson:"startTime"`
	EndTime   string `bson:"endTime"`
}

type courseDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	CourseCode     string             `bson:"courseCode"`
	CourseName     string             `bson:"courseName"`
	Instructor     string             `bson:"instructor"`
	InstructorName string             `bson:"instructorName,omitempty"`
	Room           string             `bson:"room,omitempty"`
	Program        string             `bson:"program,omitempty"`
	YearSection    string             `bson:"yearSection,omitempty"`
	Schedules      []scheduleDocument `bson:"schedules"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func newCourseDocument(c *models.Course) courseDocument {
	schedules := make([]scheduleDocument, 0, len(c.Schedules))
	for _, s := range c.Schedules {
		schedules = append(schedules, scheduleDocument(s))
	}
	return courseDocument{
		CourseCode:     c.CourseCode,
		CourseName:     c.CourseName,
		Instructor:     c.Instructor,
		InstructorName: c.InstructorName,
		Room:           c.Room,
		Program:        c.Program,
		YearSection:    c.YearSection,
		Schedules:      schedules,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (d courseDocument) toModel() models.Course {
	schedules := make([]models.Schedule, 0, len(d.Schedules))
	for _, s := range d.Schedules {
		schedules = append(schedules, models.Schedule(s))
	}
	return models.Course{
		ID:             d.ID.Hex(),
		CourseCode:     d.CourseCode,
		CourseName:     d.CourseName,
		Instructor:     d.Instructor,
		InstructorName: d.InstructorName,
		Room:           d.Room,
		Program:        d.Program,
		YearSection:    d.YearSection,
		Schedules:      schedules,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

var errCourseNotFound = appErrors.Clone(appErrors.ErrNotFound, "Course not found")

// CourseRepository persists courses in the courses collection.
type CourseRepository struct {
	coll *mongo.Collection
}

// NewCourseRepository binds the courses collection and its lookup indexes.
func NewCourseRepository(ctx context.Context, db *mongo.Database) (*CourseRepository, error) {
	coll := db.Collection("courses")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "courseCode", Value: 1}}, Options: options.Index().SetName("courseCode")},
		{Keys: bson.D{{Key: "instructor", Value: 1}}, Options: options.Index().SetName("instructor")},
	})
	if err != nil {
		return nil, fmt.Errorf("ensure course indexes: %w", err)
	}
	return &CourseRepository{coll: coll}, nil
}

// List returns every course ordered by course code.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "courseCode", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cur.Close(ctx)

	var docs []courseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	out := make([]models.Course, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// Count returns the number of stored courses.
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return n, nil
}

// FindByID returns the course with the given document id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errCourseNotFound
	}
	var doc courseDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	course := doc.toModel()
	return &course, nil
}

// Create inserts the course and fills in its generated id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	res, err := r.coll.InsertOne(ctx, newCourseDocument(course))
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		course.ID = oid.Hex()
	}
	return nil
}

// Replace overwrites every writable field of the course, keeping createdAt.
func (r *CourseRepository) Replace(ctx context.Context, course *models.Course) error {
	oid, err := primitive.ObjectIDFromHex(course.ID)
	if err != nil {
		return errCourseNotFound
	}
	doc := newCourseDocument(course)
	set := bson.M{
		"courseCode":     doc.CourseCode,
		"courseName":     doc.CourseName,
		"instructor":     doc.Instructor,
		"instructorName": doc.InstructorName,
		"room":           doc.Room,
		"program":        doc.Program,
		"yearSection":    doc.YearSection,
		"schedules":      doc.Schedules,
		"updatedAt":      doc.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return errCourseNotFound
	}
	return nil
}

// Delete removes the course by document id.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errCourseNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return errCourseNotFound
	}
	return nil
}

// ReassignInstructor points courses that reference an instructor by name at
// the instructor's idNumber and returns how many were modified.
func (r *CourseRepository) ReassignInstructor(ctx context.Context, name, idNumber string, updatedAt time.Time) (int64, error) {
	filter := bson.M{"instructor": name}
	update := bson.M{"$set": bson.M{"instructor": idNumber, "instructorName": name, "updatedAt": updatedAt}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("reassign instructor: %w", err)
	}
	return res.ModifiedCount, nil
}
