package pixfill

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/pixfill/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// validExtensions are the image file extensions accepted as source and destination.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

// Ops holds the source and destination of a processing run.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the outcome of processing a single image.
type result struct {
	path string
	err  error
}

// Execute paints the source image, or every image found in the source directory,
// and writes the results to the destination.
func (p *Processor) Execute(op *Ops) error {
	if err := p.Prepare(); err != nil {
		return err
	}
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(os.Stderr, statusMsg("⇢ painting image..."), time.Millisecond*80, true)
	}

	src := op.Src
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		f, err := utils.DownloadImage(op.Src)
		if f != nil {
			defer os.Remove(f.Name())
			f.Close()
		}
		if err != nil {
			return errors.Wrap(err, "failed to load the source image")
		}
		src = f.Name()
	}

	var (
		fi  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fi, err = os.Stdin.Stat()
	} else {
		fi, err = os.Stat(src)
	}
	if err != nil {
		return errors.Wrap(err, "failed to load the source image")
	}

	// Capture CTRL-C signal and restore back the cursor visibility.
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigc)
		close(done)
	}()
	go func() {
		select {
		case <-sigc:
			p.Spinner.RestoreCursor()
			os.Exit(1)
		case <-done:
		}
	}()

	now := time.Now()

	switch mode := fi.Mode(); {
	case mode.IsDir():
		err = op.processDir(p, src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		ext := strings.ToLower(filepath.Ext(op.Dst))
		if !utils.Contains(validExtensions, ext) && op.Dst != op.PipeName {
			return errors.Errorf("%v file type not supported", ext)
		}

		p.Spinner.Start()
		err = op.process(p, src, op.Dst)
		p.Spinner.StopMsg = opStatusMsg(err)
		p.Spinner.Stop()

		op.printOpStatus(op.Dst, err)
	default:
		return errors.Errorf("unsupported source: %s", op.Src)
	}

	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return err
}

// processDir paints concurrently the images found in the src directory tree.
func (op *Ops) processDir(p *Processor, src string) error {
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return errors.Wrap(err, "unable to create the destination directory")
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}

	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, src, validExtensions)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, op.Dst, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	p.Spinner.Start()

	var total, failed int
	for res := range ch {
		total++
		if res.err != nil {
			failed++
		}
		p.Spinner.SetMessage(statusMsg(fmt.Sprintf("⇢ painted %d images...", total)))
		op.printOpStatus(res.path, res.err)
	}

	var err error
	if failed > 0 {
		err = errors.Errorf("%d of %d images could not be painted", failed, total)
	}
	if werr := <-errc; werr != nil {
		err = errors.Wrap(werr, "directory walk failed")
	}
	p.Spinner.StopMsg = opStatusMsg(err)
	p.Spinner.Stop()

	return err
}

// consumer reads the path names from the paths channel and paints the images found there.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process calls the processor over the source image and returns the error in case exists.
func (op *Ops) process(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "could not close the destination file")
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
	}
	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to open the source file")
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.Create(out)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.Wrap(err, "unable to create the destination file")
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the painting process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n%s%s\n",
			utils.Decoratef(utils.ErrorMessage, "Error painting the image %s", filepath.Base(fname)),
			utils.Decoratef(utils.DefaultMessage, "\n\tReason: %v", err),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
		)
	}
}

func statusMsg(msg string) string {
	return fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PIXFILL", utils.StatusMessage),
		utils.DecorateText(msg, utils.DefaultMessage),
	)
}

func opStatusMsg(err error) string {
	if err != nil {
		return fmt.Sprintf("%s %s",
			statusMsg("painting failed..."),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	}
	return fmt.Sprintf("%s %s",
		statusMsg("⇢"),
		utils.DecorateText("the image has been painted successfully ✔", utils.SuccessMessage),
	)
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, strings.ToLower(filepath.Ext(d.Name()))) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
