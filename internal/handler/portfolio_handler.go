package handler

import (
	"errors"
	"net/http"

	"github.com/codesmith/internal/service"
	"github.com/gin-gonic/gin"
)

// SkillsCards returns all skills cards.
func (a *API) SkillsCards(c *gin.Context) {
	cards, err := a.portfolio.SkillsCards(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list skills cards")
		return
	}
	c.JSON(http.StatusOK, cards)
}

// About returns the about page; the :lang segment is optional.
func (a *API) About(c *gin.Context) {
	about, err := a.portfolio.About(c.Request.Context(), c.Param("lang"))
	if err != nil {
		handlePortfolioError(c, err)
		return
	}
	c.JSON(http.StatusOK, about)
}

// FooterLinks returns the social links shown in the footer.
func (a *API) FooterLinks(c *gin.Context) {
	links, err := a.portfolio.FooterLinks(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list footer links")
		return
	}
	c.JSON(http.StatusOK, links)
}

// Contact returns the contact page; the :lang segment is optional.
func (a *API) Contact(c *gin.Context) {
	contact, err := a.portfolio.Contact(c.Request.Context(), c.Param("lang"))
	if err != nil {
		handlePortfolioError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func handlePortfolioError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLanguageNotFound):
		respondError(c, http.StatusNotFound, "language not found")
	case errors.Is(err, service.ErrAboutNotFound):
		respondError(c, http.StatusNotFound, "about section not found")
	case errors.Is(err, service.ErrContactNotFound):
		respondError(c, http.StatusNotFound, "contact page not found")
	default:
		respondInternal(c, err, "failed to load page")
	}
}
