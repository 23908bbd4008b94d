package utils

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/holdno/snowFlakeByGo"
	"github.com/pkoukk/tiktoken-go"

	"github.com/documind-ai/documind/pkg/errors"
)

var idWorker *snowFlakeByGo.Worker

func SetupIDWorker(clusterID int64) {
	idWorker, _ = snowFlakeByGo.NewWorker(clusterID)
}

func GenUniqID() int64 {
	return idWorker.GetId()
}

func GenUniqIDStr() string {
	return strconv.FormatInt(GenUniqID(), 10)
}

func GenRandomID() string {
	return RandomStr(32)
}

func RandomStr(l int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	seed := "1234567890qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM"
	str := strings.Builder{}
	length := len(seed)
	for i := 0; i < l; i++ {
		point := r.Intn(length)
		str.WriteString(seed[point : point+1])
	}
	return str.String()
}

func Random(min, max int) int {
	if min == max {
		return max
	}
	max = max + 1
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return min + r.Intn(max-min)
}

func BindArgsWithGin(c *gin.Context, req interface{}) error {
	err := c.ShouldBindWith(req, binding.Default(c.Request.Method, c.ContentType()))
	if err != nil {
		return errors.New(fmt.Sprintf("Gin.ShouldBindWith.%s.%s", c.Request.Method, c.Request.URL.Path), "invalid request arguments", err).
			Code(http.StatusBadRequest).Kind(errors.KIND_INVALID_ARGUMENT)
	}
	return nil
}

// PageFromQuery reads page/pagesize query values with sane bounds.
func PageFromQuery(c *gin.Context) (uint64, uint64) {
	page, _ := strconv.ParseUint(c.DefaultQuery("page", "1"), 10, 64)
	pageSize, _ := strconv.ParseUint(c.DefaultQuery("pagesize", "50"), 10, 64)
	if page == 0 {
		page = 1
	}
	if pageSize == 0 || pageSize > 200 {
		pageSize = 50
	}
	return page, pageSize
}

// NumTokens approximates the token cost of a text for the given chat model.
// Unknown models fall back to the gpt-4o encoding; a broken tokenizer setup
// degrades to a word count rather than failing the request.
func NumTokens(text, model string) int {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.EncodingForModel("gpt-4o")
	}
	if err != nil {
		return len(strings.Fields(text))
	}
	return len(tkm.Encode(text, nil, nil))
}
