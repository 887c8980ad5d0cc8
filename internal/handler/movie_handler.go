package handler

import (
	"moviestream/internal/models"
	"moviestream/internal/service"

	"github.com/gin-gonic/gin"
)

// MovieHandler handles HTTP requests for the movie catalogue.
type MovieHandler struct {
	crud *CRUDHandler[models.Movie, models.CreateMovieRequest, models.UpdateMovieRequest]
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc service.MovieServicer) *MovieHandler {
	return &MovieHandler{crud: NewCRUDHandler[models.Movie, models.CreateMovieRequest, models.UpdateMovieRequest](svc, "movie")}
}

// ListMovies godoc
// @Summary      List movies
// @Description  List movies newest first, optionally filtered
// @Tags         movies
// @Produce      json
// @Param        genre     query     string  false  "Exact genre"
// @Param        director  query     string  false  "Exact director"
// @Param        title     query     string  false  "Case-insensitive title substring"
// @Success      200  {object}  response.Response{data=[]models.Movie}
// @Failure      500  {object}  response.Response
// @Router       /movies [get]
func (h *MovieHandler) ListMovies(c *gin.Context) { h.crud.List(c) }

// GetMovie godoc
// @Summary      Get movie by ID
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie ID"
// @Success      200  {object}  response.Response{data=models.Movie}
// @Failure      404  {object}  response.Response
// @Router       /movies/{id} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) { h.crud.Get(c) }

// CreateMovie godoc
// @Summary      Create movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateMovieRequest  true  "Movie"
// @Success      201      {object}  response.Response{data=models.Movie}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Security     BearerAuth
// @Router       /movies [post]
func (h *MovieHandler) CreateMovie(c *gin.Context) { h.crud.Create(c) }

// UpdateMovie godoc
// @Summary      Update movie
// @Description  Partially update a movie. Omitted fields are unchanged.
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Movie ID"
// @Param        request  body      models.UpdateMovieRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.Movie}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Security     BearerAuth
// @Router       /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *gin.Context) { h.crud.Update(c) }

// DeleteMovie godoc
// @Summary      Delete movie
// @Description  Delete a movie and return the removed document
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie ID"
// @Success      200  {object}  response.Response{data=models.Movie}
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *gin.Context) { h.crud.Delete(c) }
