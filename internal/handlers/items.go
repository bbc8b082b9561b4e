package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"resell_front_end/internal/api"
	"resell_front_end/internal/models"
	"resell_front_end/internal/session"
)

// itemForm garde la saisie pour réafficher le formulaire
type itemForm struct {
	Title       string
	Description string
	Price       string
	ImageURL    string
}

func postItemView(form itemForm) gin.H {
	return gin.H{"Form": form, "Heading": "Vendre un article", "Action": "/post-item", "Submit": "Publier"}
}

func editItemView(id int64, form itemForm) gin.H {
	return gin.H{"Form": form, "Heading": "Modifier l'article", "Action": "/my-items/" + strconv.FormatInt(id, 10) + "/edit", "Submit": "Enregistrer"}
}

func (h *Handler) PostItemPage(c *gin.Context) {
	h.render(c, http.StatusOK, "post_item.html", postItemView(itemForm{}))
}

// 🟢 POST /post-item : upload éventuel de l'image, puis création avec l'URL renvoyée
func (h *Handler) PostItem(c *gin.Context) {
	item, ok := h.submitItem(c, postItemView, func(ctx context.Context, client *api.Client, in models.ItemInput) (*models.Item, error) {
		return client.CreateItem(ctx, in)
	})
	if !ok {
		return
	}
	log.Printf("✅ Article %d publié", item.ID)
	h.flash(c, session.FlashSuccess, "Article publié")
	h.redirect(c, "/my-items")
}

// 🟢 GET /my-items/:id/edit : formulaire prérempli
func (h *Handler) EditItemPage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.flash(c, session.FlashError, "Article invalide")
		h.redirect(c, "/my-items")
		return
	}
	item, err := h.client(c).GetItem(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "article", err)
		return
	}
	form := itemForm{
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price.StringFixed(2),
		ImageURL:    item.ImageURL,
	}
	h.render(c, http.StatusOK, "post_item.html", editItemView(id, form))
}

// 🟢 POST /my-items/:id/edit
func (h *Handler) EditItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.flash(c, session.FlashError, "Article invalide")
		h.redirect(c, "/my-items")
		return
	}
	view := func(form itemForm) gin.H { return editItemView(id, form) }
	item, ok := h.submitItem(c, view, func(ctx context.Context, client *api.Client, in models.ItemInput) (*models.Item, error) {
		return client.UpdateItem(ctx, id, in)
	})
	if !ok {
		return
	}
	log.Printf("✏️ Article %d modifié", item.ID)
	h.flash(c, session.FlashSuccess, "Article modifié")
	h.redirect(c, "/my-items")
}

// submitItem valide le formulaire, envoie l'image si besoin puis appelle save.
// En cas d'échec le formulaire est réaffiché et ok vaut false.
func (h *Handler) submitItem(c *gin.Context, view func(itemForm) gin.H, save func(context.Context, *api.Client, models.ItemInput) (*models.Item, error)) (*models.Item, bool) {
	form := itemForm{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Price:       strings.TrimSpace(c.PostForm("price")),
		ImageURL:    strings.TrimSpace(c.PostForm("imageUrl")),
	}
	invalid := func(status int, msg string) {
		data := view(form)
		data["Error"] = msg
		h.render(c, status, "post_item.html", data)
	}

	if form.Title == "" {
		invalid(http.StatusBadRequest, "Le titre est requis")
		return nil, false
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(form.Price, ",", "."))
	if err != nil {
		invalid(http.StatusBadRequest, "Prix invalide")
		return nil, false
	}
	if price.IsNegative() {
		invalid(http.StatusBadRequest, "Le prix ne peut pas être négatif")
		return nil, false
	}

	ctx := c.Request.Context()
	client := h.client(c)

	in := models.ItemInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       price,
		ImageURL:    form.ImageURL,
	}

	if fh, err := c.FormFile("image"); err == nil && fh.Size > 0 {
		file, err := fh.Open()
		if err != nil {
			invalid(http.StatusBadRequest, "Fichier illisible")
			return nil, false
		}
		defer file.Close()

		url, err := client.UploadImage(ctx, fh.Filename, file)
		if err != nil {
			log.Printf("❌ Upload image %s: %v", fh.Filename, err)
			invalid(statusFor(err), api.UserMessage(err))
			return nil, false
		}
		log.Printf("📸 Image uploadée: %s", url)
		in.ImageURL = url
	}

	item, err := save(ctx, client, in)
	if err != nil {
		log.Printf("❌ Enregistrement article: %v", err)
		invalid(statusFor(err), api.UserMessage(err))
		return nil, false
	}
	return item, true
}

// 🟢 GET /my-items
func (h *Handler) MyItems(c *gin.Context) {
	items, err := h.client(c).MyItems(c.Request.Context())
	if err != nil {
		h.fail(c, "mes articles", err)
		return
	}
	h.render(c, http.StatusOK, "my_items.html", gin.H{"Items": items})
}

// 🟢 POST /my-items/:id/delete
func (h *Handler) DeleteMyItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.flash(c, session.FlashError, "Article invalide")
		h.redirect(c, "/my-items")
		return
	}
	if err := h.client(c).DeleteItem(c.Request.Context(), id); err != nil {
		log.Printf("❌ Suppression article %d: %v", id, err)
		h.flash(c, session.FlashError, api.UserMessage(err))
	} else {
		h.flash(c, session.FlashSuccess, "Article supprimé")
	}
	h.redirect(c, "/my-items")
}
