package server

import (
	"fmt"

	"scribe/internal/common"
	"scribe/internal/database/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Get("/health", s.healthHandler)

	authGroup := s.App.Group("/auth")
	authGroup.Post("/signup", s.signup)
	authGroup.Post("/login", s.login)
	authGroup.Get("/me", s.requireAuth(), s.me)

	notes := s.App.Group("/notes", s.requireAuth())
	notes.Post("/", s.createNote)
	notes.Get("/", s.getAllNotes)
	notes.Get("/:id", s.getSingleNote)
	notes.Put("/:id", s.updateNote)
	notes.Delete("/:id", s.deleteNote)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	stats := s.db.Health(c.UserContext())
	if stats["status"] != "up" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(stats)
	}
	return c.JSON(stats)
}

func (s *FiberServer) signup(c *fiber.Ctx) error {
	credentials := dto.Credentials{}
	if err := c.BodyParser(&credentials); err != nil {
		return badBody()
	}
	user, err := s.auth.Signup(c.UserContext(), credentials.Email, credentials.Password)
	if err != nil {
		return err
	}
	s.log.Info(c.UserContext(), "user signed up", "user_id", user.ID)
	return c.JSON(user)
}

func (s *FiberServer) login(c *fiber.Ctx) error {
	credentials := dto.Credentials{}
	if err := c.BodyParser(&credentials); err != nil {
		return badBody()
	}
	token, err := s.auth.Login(c.UserContext(), credentials.Email, credentials.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.Token{AccessToken: token, TokenType: "bearer"})
}

func (s *FiberServer) me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	input := dto.NoteInput{}
	if err := c.BodyParser(&input); err != nil {
		return badBody()
	}
	note, err := s.notes.Create(c.UserContext(), user, input.Title, input.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	notes, err := s.notes.List(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *FiberServer) getSingleNote(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}
	note, err := s.notes.Get(c.UserContext(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}
	input := dto.NoteInput{}
	if err := c.BodyParser(&input); err != nil {
		return badBody()
	}
	note, err := s.notes.Update(c.UserContext(), user, id, input.Title, input.Content)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(c.UserContext(), user, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// noteID parses the :id param. Malformed ids cannot name an existing note,
// so they get the same answer as a missing one.
func noteID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, common.ErrNotFound
	}
	return id, nil
}

func badBody() error {
	return fmt.Errorf("%w: invalid request body", common.ErrValidation)
}
