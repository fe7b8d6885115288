package vetlinkserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	petmapper "github.com/vetlink/vetlink-api/internal/domains/pets/adapters/http/mapper"
	petports "github.com/vetlink/vetlink-api/internal/domains/pets/ports"
)

// PetAPI wires HTTP transport with the pet directory bounded context.
type PetAPI struct {
	service petports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petports.Service) PetAPI {
	return PetAPI{service: service}
}

// Post /v1/pets
// Register a pet under an owner's account
func (api *PetAPI) AddPet(c *gin.Context) {
	var payload petmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if user, ok := authenticatedUser(c); ok && user.SubjectID != 0 && payload.OwnerID == 0 {
		payload.OwnerID = user.SubjectID
	}
	saved, err := api.service.AddPet(c.Request.Context(), petmapper.ToAddInput(payload))
	if err != nil {
		respondPetError(c, err)
		return
	}
	c.JSON(http.StatusCreated, petmapper.FromProjection(saved))
}

// Get /v1/pets/:petId
// Find a pet by ID
func (api *PetAPI) GetPetById(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondPetError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjection(pet))
}

// Put /v1/pets/:petId
// Update an existing directory entry
func (api *PetAPI) UpdatePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	var payload petmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdatePet(c.Request.Context(), petmapper.ToUpdateInput(id, payload))
	if err != nil {
		respondPetError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjection(updated))
}

// Delete /v1/pets/:petId
// Remove a directory entry
func (api *PetAPI) DeletePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondPetError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/owners/:ownerId/pets
// List an owner's pets
func (api *PetAPI) ListOwnerPets(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	pets, err := api.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondPetError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjectionList(pets))
}
