package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
)

// ProjectRepository implements ports.ProjectRepository on the projects collection.
type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

type projectDoc struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	Title       string              `bson:"title"`
	UserEmail   string              `bson:"user_email"`
	Budget      float64             `bson:"budget"`
	Deadline    time.Time           `bson:"deadline"`
	Status      string              `bson:"status"`
	ClientID    *primitive.ObjectID `bson:"client_id,omitempty"`
	Name        string              `bson:"name,omitempty"`
	Description string              `bson:"description,omitempty"`
}

func (d *projectDoc) toDomain() *domain.Project {
	p := &domain.Project{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		UserEmail:   d.UserEmail,
		Budget:      d.Budget,
		Deadline:    d.Deadline.UTC(),
		Status:      domain.ProjectStatus(d.Status),
		Name:        d.Name,
		Description: d.Description,
	}
	if d.ClientID != nil {
		p.ClientID = d.ClientID.Hex()
	}
	return p
}

func invalidClientID() error {
	return domain.NewValidationError(domain.FieldViolation{Field: "clientId", Reason: "must be a valid identifier"})
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	doc := projectDoc{
		Title:       p.Title,
		UserEmail:   p.UserEmail,
		Budget:      p.Budget,
		Deadline:    p.Deadline,
		Status:      string(p.Status),
		Name:        p.Name,
		Description: p.Description,
	}
	if p.ClientID != "" {
		oid, ok := objectID(p.ClientID)
		if !ok {
			return nil, invalidClientID()
		}
		doc.ClientID = &oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) Find(ctx context.Context, f domain.Filter) ([]domain.Project, error) {
	filter, matchable := projectFields.toBSON(f)
	if !matchable {
		return []domain.Project{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(docs))
	for i := range docs {
		projects = append(projects, *docs[i].toDomain())
	}
	return projects, nil
}

// projectUpdate builds the update document. An empty ClientID unsets the reference.
func projectUpdate(p ports.ProjectPatch) (bson.M, error) {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.UserEmail != nil {
		set["user_email"] = *p.UserEmail
	}
	if p.Budget != nil {
		set["budget"] = *p.Budget
	}
	if p.Deadline != nil {
		set["deadline"] = p.Deadline.UTC()
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}

	update := bson.M{}
	if p.ClientID != nil {
		if *p.ClientID == "" {
			update["$unset"] = bson.M{"client_id": ""}
		} else {
			oid, ok := objectID(*p.ClientID)
			if !ok {
				return nil, invalidClientID()
			}
			set["client_id"] = oid
		}
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update, nil
}

func (r *ProjectRepository) UpdateByID(ctx context.Context, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	update, err := projectUpdate(patch)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) DeleteByID(ctx context.Context, id string) (*domain.DeleteResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, nil
	}
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
