package store

import (
	"fmt"
	"log/slog"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/adapter/rest/annotation"
	"github.com/slidelab/pathclient/internal/adapter/rest/annotationtype"
	"github.com/slidelab/pathclient/internal/adapter/rest/image"
	"github.com/slidelab/pathclient/internal/adapter/rest/patient"
	"github.com/slidelab/pathclient/internal/adapter/rest/session"
	"github.com/slidelab/pathclient/internal/adapter/rest/user"
	"github.com/slidelab/pathclient/internal/adapter/rest/workspace"
	"github.com/slidelab/pathclient/internal/config"
)

// Repos bundles the repositories a Store is built from. Fields are
// interfaces so tests and offline mode can substitute implementations; the
// annotation-type slot in particular accepts either the REST repository or
// the badger-backed local one.
type Repos struct {
	Workspaces      WorkspaceRepo
	Patients        PatientRepo
	Images          ImageRepo
	Annotations     AnnotationRepo
	AnnotationTypes AnnotationTypeRepo
	Users           UserRepo
	Sessions        SessionRepo
}

// Store is the client-side state root. Each sub-store is an explicit
// instance; construct as many independent Stores as needed.
type Store struct {
	Workspaces      *Workspaces
	Patients        *Patients
	Images          *Images
	Annotations     *Annotations
	AnnotationTypes *AnnotationTypes
	Users           *Users
	Session         *Session
}

// New builds a Store wired entirely to the REST backend.
func New(cfg config.Config, log *slog.Logger) (*Store, error) {
	client, err := rest.New(cfg.API, log)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}
	return FromRepos(cfg, log, Repos{
		Workspaces:      workspace.New(client),
		Patients:        patient.New(client),
		Images:          image.New(client),
		Annotations:     annotation.New(client),
		AnnotationTypes: annotationtype.New(client),
		Users:           user.New(client),
		Sessions:        session.New(client),
	}), nil
}

// FromRepos builds a Store over an explicit repository set.
func FromRepos(cfg config.Config, log *slog.Logger, repos Repos) *Store {
	pageSize := cfg.Annotations.PageSize
	return &Store{
		Workspaces:      NewWorkspaces(log, repos.Workspaces, pageSize),
		Patients:        NewPatients(log, repos.Patients, pageSize),
		Images:          NewImages(log, repos.Images, pageSize),
		Annotations:     NewAnnotations(log, repos.Annotations, cfg.Annotations),
		AnnotationTypes: NewAnnotationTypes(log, repos.AnnotationTypes, pageSize),
		Users:           NewUsers(log, repos.Users, pageSize),
		Session:         NewSession(log, repos.Sessions),
	}
}
